package fastforex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
)

const DefaultBaseURL = "https://api.fastforex.io"

// Client fetches exchange rates from the FastForex API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewClient creates a new FastForex client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ portssvc.RateSource = (*Client)(nil)

type fetchAllResponse struct {
	Base    string                     `json:"base"`
	Results map[string]decimal.Decimal `json:"results"`
	Error   string                     `json:"error"`
}

// FetchRates returns every rate FastForex knows relative to base.
func (c *Client) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	query := url.Values{}
	query.Set("from", strings.ToUpper(base))
	query.Set("api_key", c.apiKey)
	endpoint := c.baseURL + "/fetch-all?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach rate provider: %w", err)
	}
	defer resp.Body.Close()

	var body fetchAllResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rate provider response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d: %s", resp.StatusCode, body.Error)
	}
	if len(body.Results) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates for %s", base)
	}

	rates := make(map[string]decimal.Decimal, len(body.Results))
	for currency, rate := range body.Results {
		rates[strings.ToUpper(currency)] = rate
	}
	return rates, nil
}
