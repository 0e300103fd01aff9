// filepath: internal/services/ingest_service.go
package services

import (
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/the-momentum/open-wearables-sub001/internal/config"
	"github.com/the-momentum/open-wearables-sub001/internal/logging"
	"github.com/the-momentum/open-wearables-sub001/internal/metrics"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/repository"
)

var _ IngestService = (*ingestService)(nil)

// SampleQuery filters a raw-sample lookup. Start and End are unix seconds;
// zero means unbounded.
type SampleQuery struct {
	DeviceID string
	Metric   string
	Start    int64
	End      int64
	Limit    uint64
}

// maxQueryLimit caps a single sample lookup. Raw rows are minute-level, so
// this is roughly a week of one metric.
const maxQueryLimit = 10000

// approxSampleJSONBytes is a rough per-sample payload size used to enforce
// the configured batch limit without re-serializing the request body.
const approxSampleJSONBytes = 96

// ingestService accepts sample batches from devices and writes them to
// the live tier.
type ingestService struct {
	Repo      *repository.Repository
	Cfg       *config.Config
	Estimates EstimateInvalidator
}

// NewIngestService creates a new IngestService.
func NewIngestService(repo *repository.Repository, cfg *config.Config, estimates EstimateInvalidator) *ingestService {
	return &ingestService{Repo: repo, Cfg: cfg, Estimates: estimates}
}

// IngestBatch validates and stores a batch of samples. It returns the
// assigned batch ID and the number of rows written.
func (s *ingestService) IngestBatch(batch models.SampleBatch) (string, int64, error) {
	if len(batch.Samples) == 0 {
		return "", 0, fmt.Errorf("%w: batch contains no samples", ErrValidation)
	}
	if limit := s.Cfg.MaxBatchSizeBytes; limit > 0 && int64(len(batch.Samples))*approxSampleJSONBytes > limit {
		return "", 0, ErrBatchTooLarge
	}
	for i, sample := range batch.Samples {
		if sample.DeviceID == "" || sample.Metric == "" {
			return "", 0, fmt.Errorf("%w: sample %d is missing device_id or metric", ErrValidation, i)
		}
		if sample.Timestamp <= 0 {
			return "", 0, fmt.Errorf("%w: sample %d has an invalid timestamp", ErrValidation, i)
		}
	}

	batchID := ulid.Make().String()
	count, err := s.Repo.InsertSamples(batch.Samples)
	if err != nil {
		logging.Log.Errorf("IngestService: batch %s failed: %v", batchID, err)
		return "", 0, err
	}

	metrics.SamplesIngested.Add(float64(count))
	metrics.BatchesIngested.Inc()
	s.Estimates.InvalidateEstimate()
	logging.Log.Debugf("IngestService: batch %s stored %d samples", batchID, count)
	return batchID, count, nil
}

// GetSamples returns raw samples matching the query, newest first.
func (s *ingestService) GetSamples(query SampleQuery) ([]models.Sample, error) {
	if query.DeviceID == "" || query.Metric == "" {
		return nil, fmt.Errorf("%w: device_id and metric are required", ErrValidation)
	}
	if query.Limit == 0 || query.Limit > maxQueryLimit {
		query.Limit = maxQueryLimit
	}
	return s.Repo.GetSamples(query.DeviceID, query.Metric, query.Start, query.End, query.Limit)
}
