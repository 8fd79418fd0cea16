package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/smomoh/flagquiz/internal/restcountries"
)

// MockCountrySource is a mock implementation of restcountries.Source
type MockCountrySource struct {
	mock.Mock
}

func (m *MockCountrySource) FetchAll(ctx context.Context) ([]restcountries.RawCountry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]restcountries.RawCountry), args.Error(1)
}
