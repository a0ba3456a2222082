package botcommands

import (
	"context"
	"fmt"
	"strings"

	"cmdbot/models"
	"cmdbot/utils"
)

const imageContentType = "image/jpg"

// ImageCommand replies with a sample image as text and as attachment
type ImageCommand struct {
	imageURL string
}

func NewImageCommand(imageURL string) *ImageCommand {
	return &ImageCommand{imageURL: imageURL}
}

func (c *ImageCommand) Name() string {
	return ImageCommandName
}

func (c *ImageCommand) Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error) {
	return &models.ResponsePayload{
		Type: models.MessageType,
		Text: c.imageURL,
		Attachments: []models.Attachment{
			{ContentType: imageContentType, ContentURL: c.imageURL},
		},
	}, nil
}

// DebugCommand echoes the request body. The raw body is preferred so key
// order survives; a message without one is re-encoded from Body.
type DebugCommand struct{}

func NewDebugCommand() *DebugCommand {
	return &DebugCommand{}
}

func (c *DebugCommand) Name() string {
	return DebugCommandName
}

func (c *DebugCommand) Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error) {
	if len(input.Message.Raw) > 0 {
		return models.NewTextPayload(string(input.Message.Raw)), nil
	}

	text, err := marshalText(input.Message.Body)
	if err != nil {
		return nil, err
	}
	return models.NewTextPayload(text), nil
}

// FortuneCommand draws one outcome per life domain, independently
type FortuneCommand struct {
	domains  []string
	outcomes []string
	picker   Picker
}

func NewFortuneCommand(domains, outcomes []string, picker Picker) *FortuneCommand {
	utils.AssertInvariant(len(domains) > 0, "fortune needs domains")
	utils.AssertInvariant(len(outcomes) > 0, "fortune needs outcomes")

	return &FortuneCommand{domains: domains, outcomes: outcomes, picker: picker}
}

func (c *FortuneCommand) Name() string {
	return FortuneCommandName
}

func (c *FortuneCommand) Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error) {
	lines := make([]string, 0, len(c.domains))
	for _, domain := range c.domains {
		outcome := c.outcomes[c.picker.IntN(len(c.outcomes))]
		lines = append(lines, fmt.Sprintf("%s: %s", domain, outcome))
	}
	return models.NewTextPayload(strings.Join(lines, "\n")), nil
}

// MealCommand suggests one dish
type MealCommand struct {
	meals  []string
	picker Picker
}

func NewMealCommand(meals []string, picker Picker) *MealCommand {
	utils.AssertInvariant(len(meals) > 0, "meal suggestions need meals")

	return &MealCommand{meals: meals, picker: picker}
}

func (c *MealCommand) Name() string {
	return MealCommandName
}

func (c *MealCommand) Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error) {
	return models.NewTextPayload(c.meals[c.picker.IntN(len(c.meals))]), nil
}

// ListCommand replies with the registered command names as a JSON array
type ListCommand struct{}

func NewListCommand() *ListCommand {
	return &ListCommand{}
}

func (c *ListCommand) Name() string {
	return ListCommandName
}

func (c *ListCommand) Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error) {
	names := input.Commands
	if names == nil {
		names = []string{}
	}

	text, err := marshalText(names)
	if err != nil {
		return nil, err
	}
	return models.NewTextPayload(text), nil
}
