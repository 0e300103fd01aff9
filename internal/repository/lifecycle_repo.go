// filepath: internal/repository/lifecycle_repo.go
package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/shared"
)

// GetLifecycleSettings reads the single policy row.
func (s *Repository) GetLifecycleSettings() (*models.LifecycleSettings, error) {
	query := `
		SELECT archive_enabled, archive_days, delete_enabled, delete_days, updated_at, last_run
		FROM lifecycle_settings WHERE id = 1
	`
	var settings models.LifecycleSettings
	err := s.DB.QueryRow(query).Scan(
		&settings.ArchiveEnabled, &settings.ArchiveDays,
		&settings.DeleteEnabled, &settings.DeleteDays,
		&settings.UpdatedAt, &settings.LastRun,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateLifecycleSettings overwrites the policy row.
func (s *Repository) UpdateLifecycleSettings(settings *models.LifecycleSettings) error {
	query := `
		UPDATE lifecycle_settings
		SET archive_enabled = ?, archive_days = ?, delete_enabled = ?, delete_days = ?, updated_at = ?
		WHERE id = 1
	`
	_, err := s.DB.Exec(query,
		settings.ArchiveEnabled, settings.ArchiveDays,
		settings.DeleteEnabled, settings.DeleteDays,
		time.Now().UTC(),
	)
	return err
}

// UpdateLastLifecycleRun records the completion time of a lifecycle run.
func (s *Repository) UpdateLastLifecycleRun() error {
	_, err := s.DB.Exec("UPDATE lifecycle_settings SET last_run = ? WHERE id = 1", time.Now().UTC())
	return err
}

// ArchiveResult reports one rollup pass.
type ArchiveResult struct {
	SamplesArchived   int64
	AggregatesWritten int64
	LiveBytesFreed    int64
	ArchiveBytesAdded int64
}

// ArchiveSamplesBefore rolls all raw samples older than the cutoff up into
// daily_aggregates and deletes them, moving the byte accounting from the
// live tier to the archive tier in the same transaction. Aggregates that
// already exist for a device/metric/day (late-syncing devices) are merged
// with a count-weighted average.
func (s *Repository) ArchiveSamplesBefore(cutoff int64) (*ArchiveResult, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() // Rollback on any error

	groupQuery := `
		SELECT device_id, metric, date(timestamp, 'unixepoch') AS day,
		       MIN(value), AVG(value), MAX(value), COUNT(*)
		FROM samples
		WHERE timestamp < ?
		GROUP BY device_id, metric, day
	`
	rows, err := tx.Query(groupQuery, cutoff)
	if err != nil {
		return nil, err
	}

	var aggregates []models.DailyAggregate
	for rows.Next() {
		var agg models.DailyAggregate
		if err := rows.Scan(&agg.DeviceID, &agg.Metric, &agg.Day, &agg.Min, &agg.Avg, &agg.Max, &agg.Count); err != nil {
			rows.Close()
			return nil, err
		}
		aggregates = append(aggregates, agg)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &ArchiveResult{}
	if len(aggregates) == 0 {
		return result, tx.Commit()
	}

	upsert := `
		INSERT INTO daily_aggregates (device_id, metric, day, min_value, avg_value, max_value, sample_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(device_id, metric, day) DO UPDATE SET
			min_value = MIN(min_value, excluded.min_value),
			max_value = MAX(max_value, excluded.max_value),
			avg_value = (avg_value * sample_count + excluded.avg_value * excluded.sample_count)
			            / (sample_count + excluded.sample_count),
			sample_count = sample_count + excluded.sample_count
	`
	for _, agg := range aggregates {
		var exists int
		err := tx.QueryRow(
			"SELECT COUNT(*) FROM daily_aggregates WHERE device_id = ? AND metric = ? AND day = ?",
			agg.DeviceID, agg.Metric, agg.Day,
		).Scan(&exists)
		if err != nil {
			return nil, err
		}

		if _, err := tx.Exec(upsert, agg.DeviceID, agg.Metric, agg.Day, agg.Min, agg.Avg, agg.Max, agg.Count); err != nil {
			return nil, err
		}

		result.SamplesArchived += agg.Count
		result.LiveBytesFreed += agg.Count * (sampleDataBytes(agg.DeviceID, agg.Metric) + sampleRowIndexBytes)
		if exists == 0 {
			result.AggregatesWritten++
			result.ArchiveBytesAdded += aggregateDataBytes(agg.DeviceID, agg.Metric) + aggregateRowIndexBytes
		}
	}

	if _, err := tx.Exec("DELETE FROM samples WHERE timestamp < ?", cutoff); err != nil {
		return nil, err
	}

	liveData := result.LiveBytesFreed - result.SamplesArchived*sampleRowIndexBytes
	liveIndex := result.SamplesArchived * sampleRowIndexBytes
	if err := updateStatsInTx(tx, tierLive, -result.SamplesArchived, -liveData, -liveIndex); err != nil {
		return nil, err
	}
	archiveData := result.ArchiveBytesAdded - result.AggregatesWritten*aggregateRowIndexBytes
	archiveIndex := result.AggregatesWritten * aggregateRowIndexBytes
	if err := updateStatsInTx(tx, tierArchive, result.AggregatesWritten, archiveData, archiveIndex); err != nil {
		return nil, err
	}

	return result, tx.Commit()
}

// DeleteSamplesBefore removes raw samples older than the cutoff without
// archiving them. Returns the number of rows and estimated bytes freed.
func (s *Repository) DeleteSamplesBefore(cutoff int64) (int64, int64, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	var count, textBytes int64
	err = tx.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(length(device_id) + length(metric)), 0) FROM samples WHERE timestamp < ?",
		cutoff,
	).Scan(&count, &textBytes)
	if err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, tx.Commit()
	}

	dataBytes := textBytes + count*sampleRowOverheadBytes
	indexBytes := count * sampleRowIndexBytes

	if _, err := tx.Exec("DELETE FROM samples WHERE timestamp < ?", cutoff); err != nil {
		return 0, 0, err
	}
	if err := updateStatsInTx(tx, tierLive, -count, -dataBytes, -indexBytes); err != nil {
		return 0, 0, err
	}

	return count, dataBytes + indexBytes, tx.Commit()
}

// DeleteAggregatesBefore removes archive rows whose day is older than the
// cutoff day (YYYY-MM-DD). Returns the number of rows and estimated bytes
// freed.
func (s *Repository) DeleteAggregatesBefore(day string) (int64, int64, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	var count, textBytes int64
	err = tx.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(length(device_id) + length(metric)), 0) FROM daily_aggregates WHERE day < ?",
		day,
	).Scan(&count, &textBytes)
	if err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, tx.Commit()
	}

	dataBytes := textBytes + count*aggregateRowOverheadBytes
	indexBytes := count * aggregateRowIndexBytes

	if _, err := tx.Exec("DELETE FROM daily_aggregates WHERE day < ?", day); err != nil {
		return 0, 0, err
	}
	if err := updateStatsInTx(tx, tierArchive, -count, -dataBytes, -indexBytes); err != nil {
		return 0, 0, err
	}

	return count, dataBytes + indexBytes, tx.Commit()
}
