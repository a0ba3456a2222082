package models

import "github.com/shopspring/decimal"

// Quote is one currency pair from the rates API. Bid and ask arrive as
// JSON strings or numbers.
type Quote struct {
	CurrencyPairCode string          `json:"currencyPairCode"`
	Bid              decimal.Decimal `json:"bid"`
	Ask              decimal.Decimal `json:"ask"`
}

// QuotesResponse is the body returned by the rates API
type QuotesResponse struct {
	Quotes []Quote `json:"quotes"`
}
