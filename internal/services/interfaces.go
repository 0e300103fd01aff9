// filepath: internal/services/interfaces.go
package services

import (
	"github.com/the-momentum/open-wearables-sub001/internal/config"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/projection"
)

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// UserService defines the interface for the user service.
type UserService interface {
	GetUserByUsername(username string) (*models.User, error)
	InitializeAdminUser(cfg *config.Config) error
}

// SettingsService defines the interface for the lifecycle settings service.
type SettingsService interface {
	GetSettings() (*models.LifecycleSettings, error)
	UpdateSettings(update models.LifecycleSettings) (*models.LifecycleSettings, error)
	GetStorageEstimate() (projection.Estimate, error)
	// GetProjection forecasts storage growth. A nil policy means "use the
	// stored settings"; a non-nil policy previews unsaved form edits.
	GetProjection(policy *projection.Policy) (*models.ProjectionResult, error)
}

// EstimateInvalidator drops cached storage figures after bulk writes.
type EstimateInvalidator interface {
	InvalidateEstimate()
}

// IngestService defines the interface for the sample ingest service.
type IngestService interface {
	IngestBatch(batch models.SampleBatch) (string, int64, error)
	GetSamples(query SampleQuery) ([]models.Sample, error)
}

// LifecycleService defines the interface for the lifecycle worker service.
type LifecycleService interface {
	Start()
	Stop()
	TriggerRun() (*models.LifecycleReport, error)
}
