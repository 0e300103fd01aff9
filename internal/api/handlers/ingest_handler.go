// filepath: internal/api/handlers/ingest_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/the-momentum/open-wearables-sub001/internal/logging"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/services"
)

// ingestResponse is returned after a batch was stored.
type ingestResponse struct {
	BatchID string `json:"batch_id"`
	Stored  int64  `json:"stored"`
}

// @Summary Ingest a batch of samples
// @Description Stores a batch of raw wearable samples in the live tier.
// @Tags Ingest
// @Accept   json
// @Produce  json
// @Param   batch  body  models.SampleBatch  true  "Sample batch"
// @Success 201 {object} ingestResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or samples"
// @Failure 413 {object} ErrorResponse "Batch exceeds the configured size limit"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /samples [post]
func (h *Handlers) IngestSamples(w http.ResponseWriter, r *http.Request) {
	var batch models.SampleBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	batchID, count, err := h.Ingest.IngestBatch(batch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBatchTooLarge):
			respondWithError(w, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, services.ErrValidation):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			logging.Log.Errorf("Sample ingest failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to store samples")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, ingestResponse{BatchID: batchID, Stored: count})
}

// @Summary Query raw samples
// @Description Returns raw samples for a device/metric in a time range, newest first.
// @Tags Ingest
// @Produce  json
// @Param   device_id  query  string  true   "Device identifier"
// @Param   metric     query  string  true   "Metric name"
// @Param   from       query  int     false  "Start of the range, unix seconds"
// @Param   to         query  int     false  "End of the range, unix seconds"
// @Param   limit      query  int     false  "Maximum number of rows"
// @Success 200 {array} models.Sample
// @Failure 400 {object} ErrorResponse "Missing or malformed query parameter"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /samples [get]
func (h *Handlers) GetSamples(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := services.SampleQuery{
		DeviceID: values.Get("device_id"),
		Metric:   values.Get("metric"),
	}

	var err error
	if v := values.Get("from"); v != "" {
		if query.Start, err = strconv.ParseInt(v, 10, 64); err != nil {
			respondWithError(w, http.StatusBadRequest, "from must be a unix timestamp")
			return
		}
	}
	if v := values.Get("to"); v != "" {
		if query.End, err = strconv.ParseInt(v, 10, 64); err != nil {
			respondWithError(w, http.StatusBadRequest, "to must be a unix timestamp")
			return
		}
	}
	if v := values.Get("limit"); v != "" {
		if query.Limit, err = strconv.ParseUint(v, 10, 64); err != nil {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}

	samples, err := h.Ingest.GetSamples(query)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.Log.Errorf("Sample query failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to query samples")
		return
	}
	respondWithJSON(w, http.StatusOK, samples)
}
