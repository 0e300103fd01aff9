// filepath: internal/lifecycle/service.go
package lifecycle

import (
	"time"

	"github.com/the-momentum/open-wearables-sub001/internal/logging"
)

// MinCheckInterval is the minimum time between runs to prevent busy-looping.
const MinCheckInterval = 1 * time.Minute

// Service provides the background worker for automated lifecycle runs.
type Service struct {
	Deps     Dependencies
	Interval time.Duration
	timer    *time.Timer
	stopCh   chan struct{}
}

// NewService creates a new lifecycle worker instance.
func NewService(deps Dependencies, interval time.Duration) *Service {
	if interval < MinCheckInterval {
		interval = MinCheckInterval
	}
	return &Service{
		Deps:     deps,
		Interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start kicks off the background lifecycle worker.
func (s *Service) Start() {
	logging.Log.Info("Starting background lifecycle worker.")
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		for {
			select {
			case <-s.timer.C:
				s.runOnce()
				s.timer.Reset(s.Interval)
				logging.Log.Infof("Next lifecycle run scheduled in %v.", s.Interval)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background lifecycle worker.
func (s *Service) Stop() {
	logging.Log.Info("Stopping background lifecycle worker.")
	close(s.stopCh)
}

func (s *Service) runOnce() {
	report, err := Run(s.Deps)
	if err != nil {
		logging.Log.Errorf("Lifecycle run failed: %v", err)
		return
	}
	logging.Log.Info(report.Message)

	if err := s.Deps.DB.UpdateLastLifecycleRun(); err != nil {
		logging.Log.Errorf("Failed to update last lifecycle run time: %v", err)
	}
}
