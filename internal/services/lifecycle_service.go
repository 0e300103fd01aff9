// filepath: internal/services/lifecycle_service.go
package services

import (
	"time"

	"github.com/the-momentum/open-wearables-sub001/internal/lifecycle"
	"github.com/the-momentum/open-wearables-sub001/internal/metrics"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/repository"
)

var _ LifecycleService = (*lifecycleService)(nil)

// lifecycleService runs the background archival/retention worker and
// exposes a manual trigger for the API.
type lifecycleService struct {
	worker *lifecycle.Service
	deps   lifecycle.Dependencies
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(repo *repository.Repository, interval time.Duration) *lifecycleService {
	deps := lifecycle.Dependencies{DB: repo}
	return &lifecycleService{
		worker: lifecycle.NewService(deps, interval),
		deps:   deps,
	}
}

// Start launches the background worker.
func (s *lifecycleService) Start() {
	s.worker.Start()
}

// Stop halts the background worker.
func (s *lifecycleService) Stop() {
	s.worker.Stop()
}

// TriggerRun executes one lifecycle pass immediately, outside the
// worker's schedule.
func (s *lifecycleService) TriggerRun() (*models.LifecycleReport, error) {
	report, err := lifecycle.Run(s.deps)
	if err != nil {
		metrics.LifecycleRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.LifecycleRuns.WithLabelValues("ok").Inc()
	metrics.SamplesArchived.Add(float64(report.SamplesArchived))
	if report.BytesFreed > 0 {
		metrics.LifecycleBytes.Add(float64(report.BytesFreed))
	}

	if err := s.deps.DB.UpdateLastLifecycleRun(); err != nil {
		return nil, err
	}
	return report, nil
}
