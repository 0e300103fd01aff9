// filepath: internal/services/settings_service.go
package services

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/the-momentum/open-wearables-sub001/internal/logging"
	"github.com/the-momentum/open-wearables-sub001/internal/metrics"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/projection"
	"github.com/the-momentum/open-wearables-sub001/internal/repository"
)

var _ SettingsService = (*settingsService)(nil)
var _ EstimateInvalidator = (*settingsService)(nil)

const estimateCacheKey = "storage_estimate"

// estimateCacheTTL bounds how stale the settings screen's size figures can
// get. The estimate is a handful of SUMs over storage_stats, but the screen
// re-requests a projection on every slider tick, so we still cache it.
const estimateCacheTTL = 30 * time.Second

// settingsService handles the lifecycle policy and the storage forecast
// shown on the settings screen.
type settingsService struct {
	Repo      *repository.Repository
	cache     *gocache.Cache
	projector projection.Projector
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo *repository.Repository) *settingsService {
	return &settingsService{
		Repo:      repo,
		cache:     gocache.New(estimateCacheTTL, 2*estimateCacheTTL),
		projector: projection.NewProjector(),
	}
}

// GetSettings retrieves the persisted lifecycle policy.
func (s *settingsService) GetSettings() (*models.LifecycleSettings, error) {
	return s.Repo.GetLifecycleSettings()
}

// UpdateSettings validates and persists a new lifecycle policy, then
// returns the stored state.
func (s *settingsService) UpdateSettings(update models.LifecycleSettings) (*models.LifecycleSettings, error) {
	if update.ArchiveEnabled && update.ArchiveDays < 1 {
		return nil, fmt.Errorf("%w: archive_days must be at least 1 when archival is enabled", ErrValidation)
	}
	if update.DeleteEnabled && update.DeleteDays < 1 {
		return nil, fmt.Errorf("%w: delete_days must be at least 1 when deletion is enabled", ErrValidation)
	}

	// delete_days <= archive_days is accepted: deletion then covers the
	// archival window and archival simply never runs.
	if err := s.Repo.UpdateLifecycleSettings(&update); err != nil {
		return nil, err
	}
	logging.Log.Infof("Lifecycle settings updated: archive=%v/%dd delete=%v/%dd",
		update.ArchiveEnabled, update.ArchiveDays, update.DeleteEnabled, update.DeleteDays)
	return s.Repo.GetLifecycleSettings()
}

// GetStorageEstimate returns the current per-tier storage accounting,
// cached briefly.
func (s *settingsService) GetStorageEstimate() (projection.Estimate, error) {
	if cached, found := s.cache.Get(estimateCacheKey); found {
		return cached.(projection.Estimate), nil
	}
	est, err := s.Repo.GetStorageEstimate()
	if err != nil {
		return projection.Estimate{}, err
	}
	s.cache.Set(estimateCacheKey, est, gocache.DefaultExpiration)
	return est, nil
}

// InvalidateEstimate drops the cached storage estimate. Called after bulk
// writes so the settings screen does not show pre-ingest numbers.
func (s *settingsService) InvalidateEstimate() {
	s.cache.Delete(estimateCacheKey)
}

// GetProjection computes the 18-month storage forecast and growth badge.
// A nil policy uses the stored settings; a non-nil one previews form edits
// the user has not saved yet.
func (s *settingsService) GetProjection(policy *projection.Policy) (*models.ProjectionResult, error) {
	if policy == nil {
		settings, err := s.Repo.GetLifecycleSettings()
		if err != nil {
			return nil, err
		}
		p := settings.Policy()
		policy = &p
	}

	est, err := s.GetStorageEstimate()
	if err != nil {
		return nil, err
	}

	metrics.ProjectionsServed.Inc()
	return &models.ProjectionResult{
		Points:       s.projector.Project(*policy, est),
		Growth:       projection.Classify(*policy),
		CurrentBytes: est.TotalBytes(),
		CurrentSize:  projection.FormatBytes(est.TotalBytes()),
		Estimate:     est,
	}, nil
}
