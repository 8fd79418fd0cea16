package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/smomoh/flagquiz/internal/mailer"
)

// MockSender is a mock implementation of mailer.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
