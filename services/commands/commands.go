package commands

import (
	"context"

	"cmdbot/models"
)

// Command is a named operation a chat user can invoke
type Command interface {
	Name() string
	Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error)
}

// CommandFunc adapts a plain function into a Command
type CommandFunc struct {
	name string
	fn   func(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error)
}

func NewCommandFunc(
	name string,
	fn func(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error),
) *CommandFunc {
	return &CommandFunc{name: name, fn: fn}
}

func (c *CommandFunc) Name() string {
	return c.name
}

func (c *CommandFunc) Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error) {
	return c.fn(ctx, input)
}
