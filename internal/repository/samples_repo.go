// filepath: internal/repository/samples_repo.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/projection"
)

// Approximate on-disk cost of one row in each tier. SQLite has no cheap
// per-table size query, so the repository keeps denormalized byte counters
// in storage_stats using these estimates. The variable part of a sample
// row is the device/metric text; everything else is a fixed overhead.
const (
	sampleRowOverheadBytes    = 40 // rowid, timestamp, value, record header
	sampleRowIndexBytes       = 48 // idx_samples_time + idx_samples_device
	aggregateRowOverheadBytes = 72 // rowid, day text, three values, count
	aggregateRowIndexBytes    = 36 // unique index + idx_aggregates_day
)

func sampleDataBytes(deviceID, metric string) int64 {
	return int64(sampleRowOverheadBytes + len(deviceID) + len(metric))
}

func aggregateDataBytes(deviceID, metric string) int64 {
	return int64(aggregateRowOverheadBytes + len(deviceID) + len(metric))
}

// InsertSamples stores a batch of raw samples and updates the live-tier
// stats in the same transaction. Returns the number of rows written.
func (s *Repository) InsertSamples(samples []models.Sample) (int64, error) {
	if len(samples) == 0 {
		return 0, nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // Rollback on any error

	stmt, err := tx.Prepare("INSERT INTO samples (device_id, metric, timestamp, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var dataDelta, indexDelta int64
	for _, sample := range samples {
		if _, err := stmt.Exec(sample.DeviceID, sample.Metric, sample.Timestamp, sample.Value); err != nil {
			return 0, fmt.Errorf("failed to insert sample: %w", err)
		}
		dataDelta += sampleDataBytes(sample.DeviceID, sample.Metric)
		indexDelta += sampleRowIndexBytes
	}

	if err := updateStatsInTx(tx, tierLive, int64(len(samples)), dataDelta, indexDelta); err != nil {
		return 0, err
	}

	return int64(len(samples)), tx.Commit()
}

// GetStorageEstimate builds the sizing snapshot the projection engine
// consumes: byte counters from storage_stats plus the observed span of the
// raw data.
func (s *Repository) GetStorageEstimate() (projection.Estimate, error) {
	var est projection.Estimate

	rows, err := s.Builder.
		Select("tier", "data_bytes", "index_bytes", "row_count").
		From("storage_stats").
		RunWith(s.DB).Query()
	if err != nil {
		return est, err
	}
	defer rows.Close()

	for rows.Next() {
		var tier string
		var dataBytes, indexBytes, rowCount int64
		if err := rows.Scan(&tier, &dataBytes, &indexBytes, &rowCount); err != nil {
			return est, err
		}
		switch tier {
		case tierLive:
			est.LiveDataBytes = dataBytes
			est.LiveIndexBytes = indexBytes
			est.LiveRowCount = rowCount
		case tierArchive:
			est.ArchiveDataBytes = dataBytes
			est.ArchiveIndexBytes = indexBytes
			est.ArchiveRowCount = rowCount
		}
	}
	if err := rows.Err(); err != nil {
		return est, err
	}

	if est.LiveRowCount > 0 {
		span, err := s.liveSpanDays()
		if err != nil {
			return est, err
		}
		est.LiveSpanDays = span
	}

	return est, nil
}

// liveSpanDays returns the number of calendar days covered by the oldest
// and newest raw sample, counting a single day as 1.
func (s *Repository) liveSpanDays() (int64, error) {
	var minTS, maxTS sql.NullInt64
	err := s.Builder.
		Select("MIN(timestamp)", "MAX(timestamp)").
		From("samples").
		RunWith(s.DB).QueryRow().Scan(&minTS, &maxTS)
	if err != nil {
		return 0, err
	}
	if !minTS.Valid || !maxTS.Valid {
		return 0, nil
	}
	return (maxTS.Int64-minTS.Int64)/86400 + 1, nil
}

// GetSamples returns raw samples for a device/metric in a time range,
// newest first.
func (s *Repository) GetSamples(deviceID, metric string, tstart, tend int64, limit uint64) ([]models.Sample, error) {
	query := s.Builder.
		Select("device_id", "metric", "timestamp", "value").
		From("samples").
		Where(squirrel.Eq{"device_id": deviceID, "metric": metric}).
		OrderBy("timestamp DESC")
	if tstart > 0 {
		query = query.Where(squirrel.GtOrEq{"timestamp": tstart})
	}
	if tend > 0 {
		query = query.Where(squirrel.LtOrEq{"timestamp": tend})
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	rows, err := query.RunWith(s.DB).Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Non-nil slice so JSON marshals to [] instead of null.
	samples := make([]models.Sample, 0)
	for rows.Next() {
		var sample models.Sample
		if err := rows.Scan(&sample.DeviceID, &sample.Metric, &sample.Timestamp, &sample.Value); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}
