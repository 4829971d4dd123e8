package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/habyx/backend/internal/models"
)

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, id uint) (*models.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserProfile), args.Error(1)
}

func (m *MockProfileService) CreateProfile(ctx context.Context, callerID uint, profile *models.UserProfile) (*models.UserProfile, error) {
	args := m.Called(ctx, callerID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, callerID, id uint, profile *models.UserProfile) error {
	args := m.Called(ctx, callerID, id, profile)
	return args.Error(0)
}

func (m *MockProfileService) DeleteProfile(ctx context.Context, callerID, id uint) error {
	args := m.Called(ctx, callerID, id)
	return args.Error(0)
}

func (m *MockProfileService) UploadImage(ctx context.Context, callerID uint, filename, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, callerID, filename, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockProfileService) DeleteImage(ctx context.Context, callerID uint) error {
	args := m.Called(ctx, callerID)
	return args.Error(0)
}
