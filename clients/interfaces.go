package clients

import (
	"context"

	"cmdbot/models"
)

// RatesClient fetches the current currency quote table
type RatesClient interface {
	GetQuotes(ctx context.Context) ([]models.Quote, error)
}
