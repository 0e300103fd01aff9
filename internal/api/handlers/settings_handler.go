// filepath: internal/api/handlers/settings_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/the-momentum/open-wearables-sub001/internal/logging"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/projection"
	"github.com/the-momentum/open-wearables-sub001/internal/services"
)

// @Summary Get lifecycle settings
// @Description Retrieves the current archival and retention policy.
// @Tags Settings
// @Produce  json
// @Success 200 {object} models.LifecycleSettings
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/lifecycle [get]
func (h *Handlers) GetLifecycleSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.GetSettings()
	if err != nil {
		logging.Log.Errorf("Failed to load lifecycle settings: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// @Summary Update lifecycle settings
// @Description Replaces the archival and retention policy.
// @Tags Settings
// @Accept   json
// @Produce  json
// @Param   settings  body  models.LifecycleSettings  true  "New policy"
// @Success 200 {object} models.LifecycleSettings
// @Failure 400 {object} ErrorResponse "Invalid request body or day counts"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/lifecycle [put]
func (h *Handlers) UpdateLifecycleSettings(w http.ResponseWriter, r *http.Request) {
	var update models.LifecycleSettings
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := h.Settings.UpdateSettings(update)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.Log.Errorf("Failed to update lifecycle settings: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// @Summary Get storage growth projection
// @Description Computes the 18-month storage forecast and growth classification. Query parameters override the stored policy so the settings screen can preview unsaved edits.
// @Tags Settings
// @Produce  json
// @Param   archive_enabled  query  bool  false  "Override the archive toggle"
// @Param   archive_days     query  int   false  "Override the archive window"
// @Param   delete_enabled   query  bool  false  "Override the delete toggle"
// @Param   delete_days      query  int   false  "Override the retention window"
// @Success 200 {object} models.ProjectionResult
// @Failure 400 {object} ErrorResponse "Malformed query parameter"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/lifecycle/projection [get]
func (h *Handlers) GetProjection(w http.ResponseWriter, r *http.Request) {
	policy, err := h.projectionPolicyFromQuery(r)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.Log.Errorf("Failed to load lifecycle settings for projection: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to compute projection")
		return
	}

	result, err := h.Settings.GetProjection(policy)
	if err != nil {
		logging.Log.Errorf("Failed to compute projection: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to compute projection")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// projectionPolicyFromQuery builds a preview policy from query parameters.
// It returns nil when no overrides were given, meaning "use the stored
// settings". Provided overrides are applied on top of the stored policy so
// the client only has to send the fields it is editing. Malformed parameters
// wrap ErrValidation; any other error means the stored settings could not
// be loaded.
func (h *Handlers) projectionPolicyFromQuery(r *http.Request) (*projection.Policy, error) {
	query := r.URL.Query()
	overridden := false
	for _, key := range []string{"archive_enabled", "archive_days", "delete_enabled", "delete_days"} {
		if query.Has(key) {
			overridden = true
			break
		}
	}
	if !overridden {
		return nil, nil
	}

	settings, err := h.Settings.GetSettings()
	if err != nil {
		return nil, err
	}
	policy := settings.Policy()

	if query.Has("archive_enabled") {
		policy.ArchiveEnabled, err = strconv.ParseBool(query.Get("archive_enabled"))
		if err != nil {
			return nil, fmt.Errorf("%w: archive_enabled must be a boolean", services.ErrValidation)
		}
	}
	if query.Has("archive_days") {
		policy.ArchiveDays, err = strconv.Atoi(query.Get("archive_days"))
		if err != nil {
			return nil, fmt.Errorf("%w: archive_days must be an integer", services.ErrValidation)
		}
	}
	if query.Has("delete_enabled") {
		policy.DeleteEnabled, err = strconv.ParseBool(query.Get("delete_enabled"))
		if err != nil {
			return nil, fmt.Errorf("%w: delete_enabled must be a boolean", services.ErrValidation)
		}
	}
	if query.Has("delete_days") {
		policy.DeleteDays, err = strconv.Atoi(query.Get("delete_days"))
		if err != nil {
			return nil, fmt.Errorf("%w: delete_days must be an integer", services.ErrValidation)
		}
	}
	return &policy, nil
}
