package storage

import (
	"context"

	"github.com/ruteri/trainer-intake/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockTrainerStore mocks the TrainerStore interface
type MockTrainerStore struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockTrainerStore) Create(ctx context.Context, app *interfaces.TrainerApplication) (*interfaces.TrainerApplication, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.TrainerApplication), args.Error(1)
}

// List mocks the List method
func (m *MockTrainerStore) List(ctx context.Context, limit int) ([]interfaces.TrainerApplication, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.TrainerApplication), args.Error(1)
}

// MockPhotoStore mocks the PhotoStore interface
type MockPhotoStore struct {
	mock.Mock
}

// Put mocks the Put method
func (m *MockPhotoStore) Put(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, name, contentType, data)
	return args.String(0), args.Error(1)
}
