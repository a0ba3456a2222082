package botcommands

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	"cmdbot/clients"
	"cmdbot/core"
	"cmdbot/core/log"
	"cmdbot/models"
)

const usdJPYPairCode = "USDJPY"

// USDJPYCommand replies with the current USD/JPY bid and ask
type USDJPYCommand struct {
	ratesClient clients.RatesClient
}

func NewUSDJPYCommand(ratesClient clients.RatesClient) *USDJPYCommand {
	return &USDJPYCommand{ratesClient: ratesClient}
}

func (c *USDJPYCommand) Name() string {
	return USDJPYCommandName
}

func (c *USDJPYCommand) Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error) {
	quotes, err := c.ratesClient.GetQuotes(ctx)
	if err != nil {
		return nil, err
	}

	quote, ok := findQuote(quotes, usdJPYPairCode).Get()
	if !ok {
		return nil, fmt.Errorf("%w: pair %s %w", core.ErrUpstream, usdJPYPairCode, core.ErrNotFound)
	}

	return models.NewTextPayload(formatQuote(quote)), nil
}

// ExchangeCommand replies with the bid and ask of the pair given as first argument
type ExchangeCommand struct {
	ratesClient clients.RatesClient
}

func NewExchangeCommand(ratesClient clients.RatesClient) *ExchangeCommand {
	return &ExchangeCommand{ratesClient: ratesClient}
}

func (c *ExchangeCommand) Name() string {
	return ExchangeCommandName
}

func (c *ExchangeCommand) Execute(ctx context.Context, input models.CommandInput) (*models.ResponsePayload, error) {
	if len(input.Args) == 0 || strings.TrimSpace(input.Args[0]) == "" {
		log.Info("⚠️ Exchange command without currency pair")
		return models.NewTextPayload("not found"), nil
	}
	pairCode := strings.TrimSpace(input.Args[0])

	quotes, err := c.ratesClient.GetQuotes(ctx)
	if err != nil {
		return nil, err
	}

	quote, ok := findQuote(quotes, pairCode).Get()
	if !ok {
		log.Info("⚠️ Currency pair not found", "pair", pairCode)
		return models.NewTextPayload("not found: " + strings.ToUpper(pairCode)), nil
	}

	return models.NewTextPayload(formatQuote(quote)), nil
}

// findQuote returns the first quote whose pair code matches, ignoring case
func findQuote(quotes []models.Quote, pairCode string) mo.Option[models.Quote] {
	for _, quote := range quotes {
		if strings.EqualFold(quote.CurrencyPairCode, pairCode) {
			return mo.Some(quote)
		}
	}
	return mo.None[models.Quote]()
}

func formatQuote(quote models.Quote) string {
	return fmt.Sprintf("bid: %s, ask: %s", formatPrice(quote.Bid), formatPrice(quote.Ask))
}

// formatPrice keeps the precision the API sent, trailing zeros included
func formatPrice(price decimal.Decimal) string {
	if exp := price.Exponent(); exp < 0 {
		return price.StringFixed(-exp)
	}
	return price.String()
}
