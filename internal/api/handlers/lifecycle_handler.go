// filepath: internal/api/handlers/lifecycle_handler.go
package handlers

import (
	"net/http"

	"github.com/the-momentum/open-wearables-sub001/internal/logging"
)

// @Summary Trigger a lifecycle run
// @Description Executes one archival/retention pass immediately, outside the worker's schedule. Admin only.
// @Tags Lifecycle
// @Produce  json
// @Success 200 {object} models.LifecycleReport
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /lifecycle/run [post]
func (h *Handlers) TriggerLifecycleRun(w http.ResponseWriter, r *http.Request) {
	report, err := h.Lifecycle.TriggerRun()
	if err != nil {
		logging.Log.Errorf("Manual lifecycle run failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Lifecycle run failed")
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}
