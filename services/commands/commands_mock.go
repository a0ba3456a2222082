package commands

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cmdbot/models"
)

// MockCommand is a mock implementation of Command
type MockCommand struct {
	mock.Mock
	CommandName string
}

func (m *MockCommand) Name() string {
	return m.CommandName
}

func (m *MockCommand) Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResponsePayload), args.Error(1)
}
