package botcommands

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cmdbot/clients/rates"
	"cmdbot/core"
	"cmdbot/models"
)

func testQuotes() []models.Quote {
	return []models.Quote{
		{
			CurrencyPairCode: "EURUSD",
			Bid:              decimal.RequireFromString("1.0812"),
			Ask:              decimal.RequireFromString("1.0813"),
		},
		{
			CurrencyPairCode: "USDJPY",
			Bid:              decimal.RequireFromString("151.230"),
			Ask:              decimal.RequireFromString("151.240"),
		},
	}
}

func TestUSDJPYCommand_Success(t *testing.T) {
	mockRates := &rates.MockRatesClient{}
	mockRates.On("GetQuotes", mock.Anything).Return(testQuotes(), nil)

	payload, err := NewUSDJPYCommand(mockRates).Execute(context.Background(), models.CommandInput{})

	require.NoError(t, err)
	assert.Equal(t, "bid: 151.230, ask: 151.240", payload.Text)
	mockRates.AssertExpectations(t)
}

func TestUSDJPYCommand_PairMissing(t *testing.T) {
	mockRates := &rates.MockRatesClient{}
	mockRates.On("GetQuotes", mock.Anything).Return(testQuotes()[:1], nil)

	payload, err := NewUSDJPYCommand(mockRates).Execute(context.Background(), models.CommandInput{})

	assert.Nil(t, payload)
	assert.True(t, errors.Is(err, core.ErrUpstream))
	assert.True(t, core.IsNotFoundError(err))
}

func TestUSDJPYCommand_FetchFails(t *testing.T) {
	mockRates := &rates.MockRatesClient{}
	mockRates.On("GetQuotes", mock.Anything).Return(nil, core.ErrUpstream)

	payload, err := NewUSDJPYCommand(mockRates).Execute(context.Background(), models.CommandInput{})

	assert.Nil(t, payload)
	assert.True(t, errors.Is(err, core.ErrUpstream))
}

func TestExchangeCommand(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "upper case pair", args: []string{"EURUSD"}, expected: "bid: 1.0812, ask: 1.0813"},
		{name: "lower case pair", args: []string{"usdjpy"}, expected: "bid: 151.230, ask: 151.240"},
		{name: "mixed case pair", args: []string{"EurUsd", "ignored"}, expected: "bid: 1.0812, ask: 1.0813"},
		{name: "unknown pair", args: []string{"zarjpy"}, expected: "not found: ZARJPY"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRates := &rates.MockRatesClient{}
			mockRates.On("GetQuotes", mock.Anything).Return(testQuotes(), nil)

			payload, err := NewExchangeCommand(mockRates).Execute(context.Background(), models.CommandInput{Args: tc.args})

			require.NoError(t, err)
			assert.Equal(t, models.MessageType, payload.Type)
			assert.Equal(t, tc.expected, payload.Text)
			mockRates.AssertExpectations(t)
		})
	}
}

func TestExchangeCommand_MissingPair(t *testing.T) {
	for _, args := range [][]string{nil, {}, {""}, {"  "}} {
		mockRates := &rates.MockRatesClient{}

		payload, err := NewExchangeCommand(mockRates).Execute(context.Background(), models.CommandInput{Args: args})

		require.NoError(t, err)
		assert.Equal(t, "not found", payload.Text)
		mockRates.AssertNotCalled(t, "GetQuotes", mock.Anything)
	}
}

func TestExchangeCommand_EmptyQuoteTable(t *testing.T) {
	mockRates := &rates.MockRatesClient{}
	mockRates.On("GetQuotes", mock.Anything).Return([]models.Quote{}, nil)

	payload, err := NewExchangeCommand(mockRates).Execute(context.Background(), models.CommandInput{Args: []string{"usdjpy"}})

	require.NoError(t, err)
	assert.Equal(t, "not found: USDJPY", payload.Text)
}

func TestExchangeCommand_FetchFails(t *testing.T) {
	mockRates := &rates.MockRatesClient{}
	mockRates.On("GetQuotes", mock.Anything).Return(nil, errors.New("connection refused"))

	payload, err := NewExchangeCommand(mockRates).Execute(context.Background(), models.CommandInput{Args: []string{"usdjpy"}})

	assert.Nil(t, payload)
	assert.Error(t, err)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "151.240", formatPrice(decimal.RequireFromString("151.240")))
	assert.Equal(t, "152", formatPrice(decimal.RequireFromString("152")))
	assert.Equal(t, "0.5", formatPrice(decimal.RequireFromString("0.5")))
}
