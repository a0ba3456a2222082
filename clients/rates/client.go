package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cmdbot/clients"
	"cmdbot/core"
	"cmdbot/core/log"
	"cmdbot/models"
)

// maxResponseBytes caps how much of the rates response is read
const maxResponseBytes = 1 << 20

// RatesClient implements the clients.RatesClient interface
type RatesClient struct {
	httpClient *http.Client
	apiURL     string
}

// NewRatesClient creates a client for the rates endpoint at apiURL.
// Every call is bounded by timeout on top of the caller's context.
func NewRatesClient(apiURL string, timeout time.Duration) clients.RatesClient {
	return &RatesClient{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
	}
}

// GetQuotes fetches the full quote table
func (c *RatesClient) GetQuotes(ctx context.Context) ([]models.Quote, error) {
	log.Debug("📋 Starting to fetch quotes", "url", c.apiURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch quotes: %v", core.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: rates API status %d, body: %s", core.ErrUpstream, resp.StatusCode, string(body))
	}

	var quotesResp models.QuotesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&quotesResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode quotes: %v", core.ErrUpstream, err)
	}

	log.Debug("📋 Completed successfully - fetched quotes", "count", len(quotesResp.Quotes))
	return quotesResp.Quotes, nil
}
