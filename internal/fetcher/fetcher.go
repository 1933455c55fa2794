// Package fetcher retrieves single-instrument quotes from the upstream
// chart provider, trying each symbol variant in order and degrading to
// a static fallback quote when the provider cannot resolve a symbol.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"carteira/internal/models"
	"carteira/internal/resolver"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"

// FetchFailure reports that every variant and the fallback table were
// exhausted for one symbol. It carries the last per-variant error.
type FetchFailure struct {
	Symbol  string
	LastErr error
}

// Error implements the error interface.
func (e *FetchFailure) Error() string {
	return fmt.Sprintf("all variants failed for %s: %v", e.Symbol, e.LastErr)
}

// Unwrap returns the last per-variant error.
func (e *FetchFailure) Unwrap() error { return e.LastErr }

// Client fetches quotes from the chart provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	log        *zap.SugaredLogger
}

// New creates a quote fetcher. timeout bounds each variant attempt
// independently of the owning cycle's context.
func New(httpClient *http.Client, baseURL string, timeout time.Duration, log *zap.SugaredLogger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		log:        log,
	}
}

// FetchQuote resolves one logical symbol. Variants are tried in order;
// a timeout, non-2xx status, and parse error all mean "try the next
// variant". When everything fails, a known fallback quote is returned
// if one exists, otherwise a *FetchFailure.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	var lastErr error

	for _, variant := range resolver.Variants(symbol) {
		quote, err := c.fetchVariant(ctx, variant, symbol)
		if err == nil {
			return quote, nil
		}
		lastErr = err

		// The owning cycle was cancelled; stop instead of burning
		// through the remaining variants.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Debugw("variant failed", "symbol", symbol, "variant", variant, "error", err)
	}

	if fb, ok := FallbackQuote(symbol); ok {
		c.log.Warnw("serving fallback quote", "symbol", symbol, "last_error", lastErr)
		return fb, nil
	}

	return nil, &FetchFailure{Symbol: symbol, LastErr: lastErr}
}

// fetchVariant performs one provider call under a per-variant timeout.
func (c *Client) fetchVariant(ctx context.Context, variant, requested string) (*models.QuoteRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(variant))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	quote, err := resolver.ParseQuote(payload, requested)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
