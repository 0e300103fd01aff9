// filepath: internal/projection/projector_test.go
package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// sampleEstimate is 1 MB of live data spread over 30 days, i.e. an ingest
// rate of ~33,333 bytes/day, with an empty archive tier.
func sampleEstimate() Estimate {
	return Estimate{
		LiveDataBytes:  900_000,
		LiveIndexBytes: 100_000,
		LiveRowCount:   1000,
		LiveSpanDays:   30,
	}
}

func TestProjectPointCount(t *testing.T) {
	policies := []Policy{
		{},
		{ArchiveEnabled: true, ArchiveDays: 10},
		{DeleteEnabled: true, DeleteDays: 30},
		{ArchiveEnabled: true, ArchiveDays: 10, DeleteEnabled: true, DeleteDays: 30},
	}

	for _, policy := range policies {
		points := Project(policy, sampleEstimate())
		assert.Len(t, points, DefaultHorizonMonths+1)
		for i, p := range points {
			assert.Equal(t, i, p.Month)
			assert.GreaterOrEqual(t, p.StorageBytes, int64(0))
		}
	}
}

func TestProjectFlatLineWithoutData(t *testing.T) {
	// A fresh install has rows to extrapolate from in neither tier. Every
	// point reports the current total, whatever the policy says.
	est := Estimate{
		ArchiveDataBytes:  4096,
		ArchiveIndexBytes: 1024,
	}

	policies := []Policy{
		{},
		{ArchiveEnabled: true, ArchiveDays: 30, DeleteEnabled: true, DeleteDays: 90},
	}
	for _, policy := range policies {
		points := Project(policy, est)
		assert.Len(t, points, DefaultHorizonMonths+1)
		for _, p := range points {
			assert.Equal(t, int64(5120), p.StorageBytes)
		}
	}
}

func TestProjectUnconstrainedGrowth(t *testing.T) {
	points := Project(Policy{}, sampleEstimate())

	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].StorageBytes, points[i-1].StorageBytes,
			"month %d should grow past month %d", i, i-1)
	}

	// One month of ingest is 30 days at 1MB/30days.
	assert.Equal(t, int64(1_000_000), points[0].StorageBytes)
	assert.Equal(t, int64(2_000_000), points[1].StorageBytes)
}

func TestProjectRetentionBoundsGrowth(t *testing.T) {
	policy := Policy{DeleteEnabled: true, DeleteDays: 10}
	points := Project(policy, sampleEstimate())

	// The live tier converges to deleteDays * dailyRawBytes and never
	// exceeds it afterwards. With a 30 day span the cap is 1MB/3.
	cap := int64(333_333)
	assert.Equal(t, int64(1_000_000), points[0].StorageBytes)
	for _, p := range points[1:] {
		assert.Equal(t, cap, p.StorageBytes)
	}
}

func TestProjectArchivalWindow(t *testing.T) {
	// Scenario: archive after 10 days, never delete. The live tier caps at
	// ~333KB and the archive grows by dailyRawBytes * compression forever.
	policy := Policy{ArchiveEnabled: true, ArchiveDays: 10}
	points := Project(policy, sampleEstimate())

	assert.Equal(t, int64(1_000_000), points[0].StorageBytes)

	// First month: live capped at 1MB/3, the initial backlog (700KB) rolled
	// up compressed plus 29 further days of spill.
	assert.Equal(t, int64(336_667), points[1].StorageBytes)

	// Steady state: the total grows by exactly one month of compressed
	// ingest, 30 * (1MB/30) * 0.002 = 2000 bytes.
	for i := 2; i < len(points); i++ {
		assert.Equal(t, int64(2000), points[i].StorageBytes-points[i-1].StorageBytes,
			"month %d should grow at the compressed rate", i)
	}
}

func TestProjectArchiveThenDelete(t *testing.T) {
	// Archive after 10 days, delete after 40: the archive tier holds at
	// most 30 days of compressed ingest, so the total stabilizes.
	policy := Policy{ArchiveEnabled: true, ArchiveDays: 10, DeleteEnabled: true, DeleteDays: 40}
	points := Project(policy, sampleEstimate())

	liveCap := 10.0 * 1_000_000.0 / 30.0
	archiveCap := 30.0 * (1_000_000.0 / 30.0) * DefaultCompression
	bound := int64(liveCap + archiveCap + 1)

	last := points[len(points)-1].StorageBytes
	prev := points[len(points)-2].StorageBytes
	assert.Equal(t, prev, last, "total should have stabilized by the horizon")
	assert.LessOrEqual(t, last, bound)
}

func TestProjectArchivalIneffectiveUnderShortRetention(t *testing.T) {
	// If retention deletes data before the archival window reaches it,
	// archival has nothing to compress and the combined policy collapses
	// to retention-only.
	combined := Policy{ArchiveEnabled: true, ArchiveDays: 10, DeleteEnabled: true, DeleteDays: 5}
	deleteOnly := Policy{DeleteEnabled: true, DeleteDays: 5}

	assert.False(t, combined.ArchivalEffective())
	assert.Equal(t, Project(deleteOnly, sampleEstimate()), Project(combined, sampleEstimate()))
}

func TestProjectRetentionMatchingSpanHoldsCurrentSize(t *testing.T) {
	// Scenario: delete after 30 days when the data already spans 30 days.
	// The retention cap equals the current size, so the forecast is flat.
	policy := Policy{DeleteEnabled: true, DeleteDays: 30}
	points := Project(policy, sampleEstimate())

	for _, p := range points {
		assert.Equal(t, int64(1_000_000), p.StorageBytes)
	}
}

func TestProjectClampsDegenerateInputs(t *testing.T) {
	t.Run("zero span", func(t *testing.T) {
		est := sampleEstimate()
		est.LiveSpanDays = 0

		// Span is clamped to one day, so the whole live tier counts as a
		// single day of ingest.
		points := Project(Policy{}, est)
		assert.Equal(t, int64(1_000_000), points[0].StorageBytes)
		assert.Equal(t, int64(31_000_000), points[1].StorageBytes)
	})

	t.Run("negative day counts disable the policy", func(t *testing.T) {
		broken := Policy{ArchiveEnabled: true, ArchiveDays: -3, DeleteEnabled: true, DeleteDays: -1}
		assert.Equal(t, Project(Policy{}, sampleEstimate()), Project(broken, sampleEstimate()))
	})

	t.Run("enabled toggles with zero days do nothing", func(t *testing.T) {
		noop := Policy{ArchiveEnabled: true, DeleteEnabled: true}
		assert.Equal(t, Project(Policy{}, sampleEstimate()), Project(noop, sampleEstimate()))
	})
}

func TestProjectorCustomConstants(t *testing.T) {
	pr := Projector{HorizonMonths: 3, DaysPerMonth: 10, Compression: 0.5}
	points := pr.Project(Policy{}, Estimate{
		LiveDataBytes: 1000,
		LiveRowCount:  10,
		LiveSpanDays:  10,
	})

	assert.Len(t, points, 4)
	assert.Equal(t, int64(1000), points[0].StorageBytes)
	assert.Equal(t, int64(2000), points[1].StorageBytes)
	assert.Equal(t, int64(4000), points[3].StorageBytes)
}
