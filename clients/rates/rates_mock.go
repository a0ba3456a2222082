package rates

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cmdbot/models"
)

// MockRatesClient is a mock implementation of clients.RatesClient
type MockRatesClient struct {
	mock.Mock
}

func (m *MockRatesClient) GetQuotes(ctx context.Context) ([]models.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Quote), args.Error(1)
}
