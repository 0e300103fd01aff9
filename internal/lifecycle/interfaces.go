// filepath: internal/lifecycle/interfaces.go
package lifecycle

import (
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/repository"
)

// DBTX is an interface that defines the database methods required by the
// lifecycle worker. This decouples the worker from the concrete database
// implementation.
type DBTX interface {
	GetLifecycleSettings() (*models.LifecycleSettings, error)
	ArchiveSamplesBefore(cutoff int64) (*repository.ArchiveResult, error)
	DeleteSamplesBefore(cutoff int64) (int64, int64, error)
	DeleteAggregatesBefore(day string) (int64, int64, error)
	UpdateLastLifecycleRun() error
}
