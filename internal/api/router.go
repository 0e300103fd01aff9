// filepath: internal/api/router.go
package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/the-momentum/open-wearables-sub001/internal/api/handlers"
	"github.com/the-momentum/open-wearables-sub001/internal/services/auth"
)

// SetupRouter configures the main router and its sub-routers.
func SetupRouter(h *handlers.Handlers, am *auth.Middleware) *mux.Router {
	r := mux.NewRouter()

	// Public Endpoints
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public Token Endpoint (authenticates via Basic Auth itself)
	r.HandleFunc("/api/token", h.GetToken).Methods("POST")

	// Authenticated API Routes
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(am.AuthMiddleware)

	addSettingsRoutes(apiRouter, h)
	addIngestRoutes(apiRouter, h)
	addLifecycleRoutes(apiRouter, h, am)

	return r
}

// addSettingsRoutes configures the lifecycle settings screen endpoints.
func addSettingsRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/settings/lifecycle", h.GetLifecycleSettings).Methods("GET")
	r.HandleFunc("/settings/lifecycle", h.UpdateLifecycleSettings).Methods("PUT")
	r.HandleFunc("/settings/lifecycle/projection", h.GetProjection).Methods("GET")
}

// addIngestRoutes configures the sample ingest endpoint.
func addIngestRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/samples", h.IngestSamples).Methods("POST")
	r.HandleFunc("/samples", h.GetSamples).Methods("GET")
}

// addLifecycleRoutes configures the manual lifecycle trigger, admin only.
func addLifecycleRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	adminRouter := r.PathPrefix("").Subrouter()
	adminRouter.Use(am.AdminMiddleware)
	adminRouter.HandleFunc("/lifecycle/run", h.TriggerLifecycleRun).Methods("POST")
}
