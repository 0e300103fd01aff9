// filepath: internal/lifecycle/tasks.go
package lifecycle

import (
	"fmt"
	"time"

	"github.com/the-momentum/open-wearables-sub001/internal/logging"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/projection"
)

// Dependencies defines the required services for the lifecycle tasks.
type Dependencies struct {
	DB  DBTX
	Now func() time.Time // injectable clock for tests
}

func (d Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

// Run applies the stored archival/retention policy once. It is the real
// counterpart of the forecast: raw samples older than the archive window
// roll up into daily aggregates, and data past the retention window is
// deleted from whichever tier holds it.
func Run(deps Dependencies) (*models.LifecycleReport, error) {
	settings, err := deps.DB.GetLifecycleSettings()
	if err != nil {
		return nil, fmt.Errorf("could not load lifecycle settings: %w", err)
	}

	report := &models.LifecycleReport{}
	now := deps.now()
	policy := settings.Policy()

	switch {
	case policy.ArchivalEffective():
		// Archive only complete days so a device/metric/day rolls up at
		// most once per day.
		cutoff := startOfDay(now.AddDate(0, 0, -settings.ArchiveDays))
		result, err := deps.DB.ArchiveSamplesBefore(cutoff.Unix())
		if err != nil {
			return nil, fmt.Errorf("archival rollup failed: %w", err)
		}
		report.SamplesArchived = result.SamplesArchived
		report.AggregatesWritten = result.AggregatesWritten
		report.BytesFreed += result.LiveBytesFreed - result.ArchiveBytesAdded

		if settings.DeleteEnabled && settings.DeleteDays > settings.ArchiveDays {
			day := now.AddDate(0, 0, -settings.DeleteDays).Format("2006-01-02")
			deleted, bytesFreed, err := deps.DB.DeleteAggregatesBefore(day)
			if err != nil {
				return nil, fmt.Errorf("archive retention failed: %w", err)
			}
			report.AggregatesDeleted = deleted
			report.BytesFreed += bytesFreed
		}

	case settings.DeleteEnabled && settings.DeleteDays > 0:
		// Retention only (or archival rendered ineffective by a shorter
		// retention window): delete straight from the live tier.
		cutoff := now.AddDate(0, 0, -settings.DeleteDays)
		deleted, bytesFreed, err := deps.DB.DeleteSamplesBefore(cutoff.Unix())
		if err != nil {
			return nil, fmt.Errorf("retention cleanup failed: %w", err)
		}
		report.SamplesDeleted = deleted
		report.BytesFreed += bytesFreed

	default:
		logging.Log.Debug("Lifecycle run skipped: no policy enabled.")
	}

	report.Message = fmt.Sprintf(
		"Lifecycle run complete. %d samples archived into %d aggregates, %d samples and %d aggregates deleted, freeing %s.",
		report.SamplesArchived, report.AggregatesWritten,
		report.SamplesDeleted, report.AggregatesDeleted,
		projection.FormatBytes(report.BytesFreed),
	)

	return report, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
