// filepath: internal/services/info_service.go
package services

import (
	"time"

	"github.com/the-momentum/open-wearables-sub001/internal/models"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Version   string
	StartTime time.Time
}

// NewInfoService creates a new InfoService.
func NewInfoService(version string, startTime time.Time) *infoService {
	return &infoService{
		Version:   version,
		StartTime: startTime,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	return models.Info{
		ServiceName: "Open Wearables API",
		Version:     s.Version,
		UptimeSince: s.StartTime,
	}
}
