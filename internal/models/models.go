// filepath: internal/models/models.go
package models

import (
	"time"

	"github.com/the-momentum/open-wearables-sub001/internal/projection"
)

// Info describes the running service for the public /api/info endpoint.
type Info struct {
	ServiceName string    `json:"service_name"`
	Version     string    `json:"version"`
	UptimeSince time.Time `json:"uptime_since"`
}

// User is an account allowed to read or change lifecycle settings.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// Sample is one raw time-series measurement from a wearable device,
// typically one row per metric per minute.
type Sample struct {
	DeviceID  string  `json:"device_id"`
	Metric    string  `json:"metric"`
	Timestamp int64   `json:"timestamp"` // unix seconds
	Value     float64 `json:"value"`
}

// SampleBatch is the ingest payload: a set of samples submitted together.
type SampleBatch struct {
	Samples []Sample `json:"samples"`
}

// DailyAggregate is one archive-tier row: a day of raw samples for one
// device/metric rolled up into a single record.
type DailyAggregate struct {
	DeviceID string  `json:"device_id"`
	Metric   string  `json:"metric"`
	Day      string  `json:"day"` // YYYY-MM-DD
	Min      float64 `json:"min"`
	Avg      float64 `json:"avg"`
	Max      float64 `json:"max"`
	Count    int64   `json:"count"`
}

// LifecycleSettings is the persisted archival/retention policy together
// with its bookkeeping fields.
type LifecycleSettings struct {
	ArchiveEnabled bool      `json:"archive_enabled"`
	ArchiveDays    int       `json:"archive_days"`
	DeleteEnabled  bool      `json:"delete_enabled"`
	DeleteDays     int       `json:"delete_days"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastRun        time.Time `json:"last_run"`
}

// Policy converts the persisted settings into the projection engine's
// policy value.
func (s LifecycleSettings) Policy() projection.Policy {
	return projection.Policy{
		ArchiveEnabled: s.ArchiveEnabled,
		ArchiveDays:    s.ArchiveDays,
		DeleteEnabled:  s.DeleteEnabled,
		DeleteDays:     s.DeleteDays,
	}
}

// LifecycleReport summarizes one lifecycle run for logs and the manual
// trigger endpoint.
type LifecycleReport struct {
	SamplesArchived   int64  `json:"samples_archived"`
	AggregatesWritten int64  `json:"aggregates_written"`
	SamplesDeleted    int64  `json:"samples_deleted"`
	AggregatesDeleted int64  `json:"aggregates_deleted"`
	BytesFreed        int64  `json:"bytes_freed"`
	Message           string `json:"message"`
}

// ProjectionResult is the settings-screen payload: forecast points, the
// growth badge and a human-readable current size.
type ProjectionResult struct {
	Points       []projection.Point   `json:"points"`
	Growth       projection.ClassInfo `json:"growth"`
	CurrentBytes int64                `json:"current_bytes"`
	CurrentSize  string               `json:"current_size"`
	Estimate     projection.Estimate  `json:"estimate"`
}
