// Package frenet implements the client for the Frenet carrier-rate API.
//
// The client plays the role the old HTTP proxy played: it attaches the
// fixed origin CEP and the static API token to every outbound request and
// passes the caller's payload through otherwise unchanged. Upstream errors
// keep their HTTP status and body; a missing token is reported as a
// configuration error distinct from anything upstream.
package frenet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the production Frenet quote endpoint.
const DefaultBaseURL = "https://api.frenet.com.br"

// DefaultSellerCEP is the fixed origin postal code quotes ship from.
const DefaultSellerCEP = "07251000"

// ErrMissingToken indicates the API credential was never configured.
// This is a server misconfiguration, not an upstream carrier error.
var ErrMissingToken = errors.New("frenet: API token not configured")

// APIError carries an upstream non-2xx response through unchanged.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("frenet: upstream returned %d: %s", e.StatusCode, e.Body)
}

// Quoter is the quote interface the engine consumes. Satisfied by Client
// and by test fakes.
type Quoter interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
}

// Config holds Frenet client configuration.
type Config struct {
	Token     string
	SellerCEP string
	BaseURL   string
	Timeout   time.Duration
}

// Client calls the Frenet shipping quote API.
type Client struct {
	token     string
	sellerCEP string
	baseURL   string
	http      *http.Client
}

// NewClient creates a Frenet client. A missing token fails fast so the
// misconfiguration surfaces at startup instead of mid-run.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if cfg.SellerCEP == "" {
		cfg.SellerCEP = DefaultSellerCEP
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		token:     cfg.Token,
		sellerCEP: cfg.SellerCEP,
		baseURL:   cfg.BaseURL,
		http:      &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Quote requests rate options for one shipment. The caller provides the
// destination, declared value and package list; origin and country are
// filled in here.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	req.SellerCEP = c.sellerCEP
	req.RecipientCountry = "BR"

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shipping/quote", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("token", c.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call frenet: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read frenet response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var quote QuoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, fmt.Errorf("failed to decode frenet response: %w", err)
	}

	return &quote, nil
}
