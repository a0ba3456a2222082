package botcommands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cmdbot/core/log"
	"cmdbot/models"
)

// UUIDCommand replies with a fresh random UUID
type UUIDCommand struct{}

func NewUUIDCommand() *UUIDCommand {
	return &UUIDCommand{}
}

func (c *UUIDCommand) Name() string {
	return UUIDCommandName
}

func (c *UUIDCommand) Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate uuid: %w", err)
	}

	log.Debug("🆔 Generated uuid", "uuid", id.String())
	return models.NewTextPayload(id.String()), nil
}
