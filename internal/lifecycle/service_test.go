// filepath: internal/lifecycle/service_test.go
package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/repository"
)

// MockDB is a mock implementation of the DBTX interface for testing.
type MockDB struct {
	mock.Mock
}

func (m *MockDB) GetLifecycleSettings() (*models.LifecycleSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LifecycleSettings), args.Error(1)
}

func (m *MockDB) ArchiveSamplesBefore(cutoff int64) (*repository.ArchiveResult, error) {
	args := m.Called(cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ArchiveResult), args.Error(1)
}

func (m *MockDB) DeleteSamplesBefore(cutoff int64) (int64, int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockDB) DeleteAggregatesBefore(day string) (int64, int64, error) {
	args := m.Called(day)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockDB) UpdateLastLifecycleRun() error {
	args := m.Called()
	return args.Error(0)
}

func setupTest() (Dependencies, *MockDB) {
	mockDB := new(MockDB)
	fixedNow := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	deps := Dependencies{
		DB:  mockDB,
		Now: func() time.Time { return fixedNow },
	}
	return deps, mockDB
}

func TestRunNoPolicyEnabled(t *testing.T) {
	deps, mockDB := setupTest()
	mockDB.On("GetLifecycleSettings").Return(&models.LifecycleSettings{}, nil).Once()

	report, err := Run(deps)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), report.SamplesArchived)
	assert.Equal(t, int64(0), report.SamplesDeleted)
	assert.Contains(t, report.Message, "0 B")
	mockDB.AssertExpectations(t)
}

func TestRunArchivalOnly(t *testing.T) {
	deps, mockDB := setupTest()
	mockDB.On("GetLifecycleSettings").Return(&models.LifecycleSettings{
		ArchiveEnabled: true,
		ArchiveDays:    10,
	}, nil).Once()

	// 2026-08-29 minus 10 days, at midnight UTC.
	expectedCutoff := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC).Unix()
	mockDB.On("ArchiveSamplesBefore", expectedCutoff).Return(&repository.ArchiveResult{
		SamplesArchived:   1440,
		AggregatesWritten: 3,
		LiveBytesFreed:    140_000,
		ArchiveBytesAdded: 280,
	}, nil).Once()

	report, err := Run(deps)
	assert.NoError(t, err)
	assert.Equal(t, int64(1440), report.SamplesArchived)
	assert.Equal(t, int64(3), report.AggregatesWritten)
	assert.Equal(t, int64(139_720), report.BytesFreed)
	mockDB.AssertExpectations(t)
}

func TestRunArchivalWithRetention(t *testing.T) {
	deps, mockDB := setupTest()
	mockDB.On("GetLifecycleSettings").Return(&models.LifecycleSettings{
		ArchiveEnabled: true,
		ArchiveDays:    10,
		DeleteEnabled:  true,
		DeleteDays:     40,
	}, nil).Once()

	expectedCutoff := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC).Unix()
	mockDB.On("ArchiveSamplesBefore", expectedCutoff).Return(&repository.ArchiveResult{}, nil).Once()
	mockDB.On("DeleteAggregatesBefore", "2026-07-20").Return(int64(5), int64(540), nil).Once()

	report, err := Run(deps)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), report.AggregatesDeleted)
	assert.Equal(t, int64(540), report.BytesFreed)
	mockDB.AssertExpectations(t)
}

func TestRunRetentionOnly(t *testing.T) {
	deps, mockDB := setupTest()
	mockDB.On("GetLifecycleSettings").Return(&models.LifecycleSettings{
		DeleteEnabled: true,
		DeleteDays:    30,
	}, nil).Once()

	expectedCutoff := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC).Unix()
	mockDB.On("DeleteSamplesBefore", expectedCutoff).Return(int64(720), int64(64_000), nil).Once()

	report, err := Run(deps)
	assert.NoError(t, err)
	assert.Equal(t, int64(720), report.SamplesDeleted)
	assert.Equal(t, int64(64_000), report.BytesFreed)
	assert.Contains(t, report.Message, "62.5 KB")
	mockDB.AssertExpectations(t)
}

func TestRunShortRetentionDisablesArchival(t *testing.T) {
	// deleteDays <= archiveDays: data is deleted before the archive window
	// reaches it, so the run must behave exactly like retention-only.
	deps, mockDB := setupTest()
	mockDB.On("GetLifecycleSettings").Return(&models.LifecycleSettings{
		ArchiveEnabled: true,
		ArchiveDays:    10,
		DeleteEnabled:  true,
		DeleteDays:     5,
	}, nil).Once()

	expectedCutoff := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC).Unix()
	mockDB.On("DeleteSamplesBefore", expectedCutoff).Return(int64(0), int64(0), nil).Once()

	_, err := Run(deps)
	assert.NoError(t, err)
	mockDB.AssertNotCalled(t, "ArchiveSamplesBefore", mock.Anything)
	mockDB.AssertExpectations(t)
}

func TestRunSettingsError(t *testing.T) {
	deps, mockDB := setupTest()
	mockDB.On("GetLifecycleSettings").Return(nil, assert.AnError).Once()

	report, err := Run(deps)
	assert.Error(t, err)
	assert.Nil(t, report)
	mockDB.AssertExpectations(t)
}
