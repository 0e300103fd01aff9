// filepath: internal/projection/projector.go

// Package projection implements the storage growth forecast used by the
// data-lifecycle settings screen. Given a snapshot of current database
// sizing and the user's in-progress archival/retention policy, it simulates
// day-granularity storage accounting over an 18 month horizon and samples
// the total at month boundaries. Everything in this package is pure: no
// I/O, no shared state, safe to recompute on every keystroke.
package projection

import "math"

// Default simulation constants. DaysPerMonth is a simplifying calendar
// convention, not a real month length. Compression models rolling one day
// of raw per-minute samples into a single daily aggregate row; it is a
// design assumption, not derived from actual row sizes.
const (
	DefaultHorizonMonths = 18
	DefaultDaysPerMonth  = 30
	DefaultCompression   = 0.002
)

// Estimate is a read-only snapshot of current database sizing, as reported
// by the repository. All fields are non-negative.
type Estimate struct {
	LiveDataBytes     int64 `json:"live_data_bytes"`
	LiveIndexBytes    int64 `json:"live_index_bytes"`
	LiveRowCount      int64 `json:"live_row_count"`
	LiveSpanDays      int64 `json:"live_data_span_days"`
	ArchiveDataBytes  int64 `json:"archive_data_bytes"`
	ArchiveIndexBytes int64 `json:"archive_index_bytes"`
	ArchiveRowCount   int64 `json:"archive_row_count"`
}

// LiveTotalBytes returns the current footprint of the raw sample table.
func (e Estimate) LiveTotalBytes() int64 {
	return e.LiveDataBytes + e.LiveIndexBytes
}

// TotalBytes returns the current footprint of both storage tiers.
func (e Estimate) TotalBytes() int64 {
	return e.LiveDataBytes + e.LiveIndexBytes + e.ArchiveDataBytes + e.ArchiveIndexBytes
}

// Policy is the user's transient policy edit from the settings form. The
// two toggles are independent; all four combinations are valid. Day counts
// are only meaningful while the matching toggle is enabled.
type Policy struct {
	ArchiveEnabled bool `json:"archive_enabled"`
	ArchiveDays    int  `json:"archive_days"`
	DeleteEnabled  bool `json:"delete_enabled"`
	DeleteDays     int  `json:"delete_days"`
}

// normalized clamps malformed day counts to zero so the simulation stays
// total. The surrounding form rejects non-positive values before save, but
// the engine must not rely on that.
func (p Policy) normalized() Policy {
	if p.ArchiveDays < 0 {
		p.ArchiveDays = 0
	}
	if p.DeleteDays < 0 {
		p.DeleteDays = 0
	}
	return p
}

// ArchivalEffective reports whether archival actually does anything under
// the combined policy. If the retention window deletes data before the
// archival window would act on it, archival never has anything to compress
// and the policy reduces to retention-only.
func (p Policy) ArchivalEffective() bool {
	p = p.normalized()
	return p.ArchiveEnabled && p.ArchiveDays > 0 &&
		(!p.DeleteEnabled || p.DeleteDays > p.ArchiveDays)
}

// Point is one sampled month of the forecast. Month 0 is "now".
type Point struct {
	Month        int   `json:"month"`
	StorageBytes int64 `json:"storage_bytes"`
}

// Projector carries the simulation constants so tests and callers can tune
// them. The zero value is not useful; use NewProjector.
type Projector struct {
	HorizonMonths int
	DaysPerMonth  int
	Compression   float64
}

// NewProjector returns a Projector with the default constants.
func NewProjector() Projector {
	return Projector{
		HorizonMonths: DefaultHorizonMonths,
		DaysPerMonth:  DefaultDaysPerMonth,
		Compression:   DefaultCompression,
	}
}

// Project runs the forecast with the default constants.
func Project(policy Policy, est Estimate) []Point {
	return NewProjector().Project(policy, est)
}

// Project simulates day-by-day storage accounting and returns exactly
// HorizonMonths+1 points in increasing month order. It is deterministic
// and never fails.
//
// Each simulated day adds one day's worth of raw ingest, then applies the
// policies: an effective archival window caps the live tier and spills the
// excess into the archive tier compressed, retention hard-caps whichever
// tier it applies to. Accumulators stay floating point for the whole run;
// rounding happens only at emission so the error cannot compound.
func (pr Projector) Project(policy Policy, est Estimate) []Point {
	policy = policy.normalized()
	points := make([]Point, 0, pr.HorizonMonths+1)

	// No rows means no observed ingest rate to extrapolate from. Report a
	// flat line at the current total instead of fabricating a growth rate.
	if est.LiveRowCount == 0 {
		for month := 0; month <= pr.HorizonMonths; month++ {
			points = append(points, Point{Month: month, StorageBytes: est.TotalBytes()})
		}
		return points
	}

	spanDays := est.LiveSpanDays
	if spanDays < 1 {
		spanDays = 1
	}
	dailyRawBytes := float64(est.LiveTotalBytes()) / float64(spanDays)
	dailyArchiveBytes := dailyRawBytes * pr.Compression

	archivalEffective := policy.ArchivalEffective()
	deleteEffective := policy.DeleteEnabled && policy.DeleteDays > 0

	liveBytes := float64(est.LiveTotalBytes())
	archiveBytes := float64(est.ArchiveDataBytes + est.ArchiveIndexBytes)

	totalDays := pr.HorizonMonths * pr.DaysPerMonth
	for day := 0; day <= totalDays; day++ {
		if day%pr.DaysPerMonth == 0 {
			points = append(points, Point{
				Month:        day / pr.DaysPerMonth,
				StorageBytes: int64(math.Round(liveBytes + archiveBytes)),
			})
		}
		if day == totalDays {
			break
		}

		liveBytes += dailyRawBytes

		switch {
		case archivalEffective:
			// Once the archival window is in steady state the live tier
			// holds at most ArchiveDays worth of raw ingest; the excess is
			// rolled into the archive tier at the compression ratio.
			liveCap := float64(policy.ArchiveDays) * dailyRawBytes
			if liveBytes > liveCap {
				excess := liveBytes - liveCap
				liveBytes = liveCap
				archiveBytes += excess * pr.Compression
			}
			if deleteEffective && policy.DeleteDays > policy.ArchiveDays {
				// Archive rows age out of the post-archival retention window.
				archiveCap := float64(policy.DeleteDays-policy.ArchiveDays) * dailyArchiveBytes
				if archiveBytes > archiveCap {
					archiveBytes = archiveCap
				}
			}
		case deleteEffective:
			// Retention only: rows are deleted straight from the live tier,
			// no archive is produced.
			liveCap := float64(policy.DeleteDays) * dailyRawBytes
			if liveBytes > liveCap {
				liveBytes = liveCap
			}
		}
		// Neither policy effective: unconstrained linear growth.
	}

	return points
}
