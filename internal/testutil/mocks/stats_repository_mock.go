package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Load(ctx context.Context, profileID int64) ([]byte, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStatsRepository) Save(ctx context.Context, profileID int64, payload []byte) error {
	args := m.Called(ctx, profileID, payload)
	return args.Error(0)
}
