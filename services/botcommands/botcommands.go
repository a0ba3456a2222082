// Package botcommands holds the commands the bot answers to.
package botcommands

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"cmdbot/clients"
	"cmdbot/config"
	"cmdbot/services/commands"
)

const (
	UUIDCommandName     = "uuidv4"
	USDJPYCommandName   = "usdjp"
	ExchangeCommandName = "exchange"
	ImageCommandName    = "image"
	DebugCommandName    = "debug"
	FortuneCommandName  = "omikuji"
	MealCommandName     = "lunch"
	ListCommandName     = "commands"
)

// Picker returns a uniformly distributed integer in [0, n)
type Picker interface {
	IntN(n int) int
}

type randomPicker struct{}

func (randomPicker) IntN(n int) int {
	return rand.Intn(n)
}

// NewRandomPicker returns a Picker backed by the process-wide random source
func NewRandomPicker() Picker {
	return randomPicker{}
}

// NewDefaultCommands returns every bot command in declared order
func NewDefaultCommands(ratesClient clients.RatesClient, catalog *config.Catalog, picker Picker) []commands.Command {
	return []commands.Command{
		NewUUIDCommand(),
		NewUSDJPYCommand(ratesClient),
		NewExchangeCommand(ratesClient),
		NewImageCommand(catalog.ImageURL),
		NewDebugCommand(),
		NewFortuneCommand(catalog.Fortune.Domains, catalog.Fortune.Outcomes, picker),
		NewMealCommand(catalog.Meals, picker),
		NewListCommand(),
	}
}

func marshalText(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response text: %w", err)
	}
	return string(data), nil
}
