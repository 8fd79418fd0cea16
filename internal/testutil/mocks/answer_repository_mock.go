package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/smomoh/flagquiz/internal/models"
)

// MockAnswerRepository is a mock implementation of repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Insert(ctx context.Context, rec models.AnswerRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerRepository) List(ctx context.Context, filter models.AnswerFilter) ([]models.AnswerRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AnswerRecord), args.Error(1)
}

func (m *MockAnswerRepository) Count(ctx context.Context, filter models.AnswerFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
