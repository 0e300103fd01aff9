// filepath: internal/api/handlers/main.go
package handlers

import (
	"github.com/the-momentum/open-wearables-sub001/internal/config"
	"github.com/the-momentum/open-wearables-sub001/internal/services"
	"github.com/the-momentum/open-wearables-sub001/internal/services/auth"
)

// Handlers holds the shared dependencies for API handlers.
type Handlers struct {
	Info      services.InfoService
	User      services.UserService
	Settings  services.SettingsService
	Ingest    services.IngestService
	Lifecycle services.LifecycleService
	Token     auth.TokenService

	Cfg *config.Config
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	info services.InfoService,
	user services.UserService,
	settings services.SettingsService,
	ingest services.IngestService,
	lifecycle services.LifecycleService,
	token auth.TokenService,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		Info:      info,
		User:      user,
		Settings:  settings,
		Ingest:    ingest,
		Lifecycle: lifecycle,
		Token:     token,
		Cfg:       cfg,
	}
}
