// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"github.com/stretchr/testify/mock"

	"github.com/the-momentum/open-wearables-sub001/internal/config"
	"github.com/the-momentum/open-wearables-sub001/internal/models"
	"github.com/the-momentum/open-wearables-sub001/internal/projection"
	"github.com/the-momentum/open-wearables-sub001/internal/services"
	"github.com/the-momentum/open-wearables-sub001/internal/services/auth"
)

// --- MOCK USER SERVICE ---
type MockUserService struct {
	mock.Mock
}

var _ services.UserService = (*MockUserService)(nil)

func (m *MockUserService) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) InitializeAdminUser(cfg *config.Config) error {
	args := m.Called(cfg)
	return args.Error(0)
}

// --- MOCK SETTINGS SERVICE ---
type MockSettingsService struct {
	mock.Mock
}

var _ services.SettingsService = (*MockSettingsService)(nil)

func (m *MockSettingsService) GetSettings() (*models.LifecycleSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LifecycleSettings), args.Error(1)
}
func (m *MockSettingsService) UpdateSettings(update models.LifecycleSettings) (*models.LifecycleSettings, error) {
	args := m.Called(update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LifecycleSettings), args.Error(1)
}
func (m *MockSettingsService) GetStorageEstimate() (projection.Estimate, error) {
	args := m.Called()
	return args.Get(0).(projection.Estimate), args.Error(1)
}
func (m *MockSettingsService) GetProjection(policy *projection.Policy) (*models.ProjectionResult, error) {
	args := m.Called(policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectionResult), args.Error(1)
}

// --- MOCK INGEST SERVICE ---
type MockIngestService struct {
	mock.Mock
}

var _ services.IngestService = (*MockIngestService)(nil)

func (m *MockIngestService) IngestBatch(batch models.SampleBatch) (string, int64, error) {
	args := m.Called(batch)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockIngestService) GetSamples(query services.SampleQuery) ([]models.Sample, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sample), args.Error(1)
}

// --- MOCK LIFECYCLE SERVICE ---
type MockLifecycleService struct {
	mock.Mock
}

var _ services.LifecycleService = (*MockLifecycleService)(nil)

func (m *MockLifecycleService) Start() { m.Called() }
func (m *MockLifecycleService) Stop()  { m.Called() }
func (m *MockLifecycleService) TriggerRun() (*models.LifecycleReport, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LifecycleReport), args.Error(1)
}

// --- MOCK TOKEN SERVICE ---
type MockTokenService struct {
	mock.Mock
}

var _ auth.TokenService = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}
func (m *MockTokenService) ValidateAccessToken(tokenString string) (*models.User, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
