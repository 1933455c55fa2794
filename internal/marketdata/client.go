package marketdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"carteira/internal/models"
)

// BatchError reports that the aggregation call itself failed before any
// per-symbol resolution: network error, non-2xx status, or a body that
// is not a snapshot.
type BatchError struct {
	Status int
	Err    error
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("aggregation request failed with status %d", e.Status)
	}
	return fmt.Sprintf("aggregation request failed: %v", e.Err)
}

// Unwrap returns the underlying error, if any.
func (e *BatchError) Unwrap() error { return e.Err }

// Client calls a remote aggregation endpoint. It satisfies the same
// contract as the in-process Service, so the refresh orchestrator does
// not care which one it talks to.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an aggregation endpoint client. apiKey may be empty
// when the endpoint is open.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Aggregate posts the refresh batch and decodes the resulting snapshot.
func (c *Client) Aggregate(ctx context.Context, req models.RefreshRequest) (*models.MarketSnapshot, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &BatchError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/market/aggregate", bytes.NewReader(body))
	if err != nil {
		return nil, &BatchError{Err: fmt.Errorf("creating request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Preserve cancellation so the orchestrator can tell an
		// aborted cycle from a failed one.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &BatchError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BatchError{Status: resp.StatusCode}
	}

	var snap models.MarketSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, &BatchError{Err: fmt.Errorf("decoding snapshot: %w", err)}
	}
	return &snap, nil
}
