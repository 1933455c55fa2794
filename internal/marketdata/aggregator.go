package marketdata

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"carteira/internal/models"
)

// QuoteFetcher resolves one logical symbol into a normalized quote.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error)
}

// Service is the server side of the aggregation endpoint: it resolves a
// refresh batch into a complete market snapshot. Unresolvable symbols
// are omitted from their category array; they never fail the batch.
type Service struct {
	fetcher QuoteFetcher
	log     *zap.SugaredLogger
}

// NewService creates an aggregation service over a quote fetcher.
func NewService(fetcher QuoteFetcher, log *zap.SugaredLogger) *Service {
	return &Service{fetcher: fetcher, log: log}
}

// Aggregate resolves every symbol in the request concurrently and
// assembles the snapshot. Manual assets are passed through with the
// user-supplied values and are never fetched. Custom indices are
// fetched by symbol and re-labeled with the user's display name.
// The only aggregate-level failure is context cancellation.
func (s *Service) Aggregate(ctx context.Context, req models.RefreshRequest) (*models.MarketSnapshot, error) {
	snap := &models.MarketSnapshot{}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, category := range models.Categories() {
		symbols := req.Symbols(category)
		rows := make([]models.QuoteRecord, 0, len(symbols))
		snap.SetRows(category, rows)

		for _, symbol := range symbols {
			wg.Add(1)
			go func(category models.Category, symbol string) {
				defer wg.Done()
				quote, err := s.fetcher.FetchQuote(ctx, symbol)
				if err != nil {
					s.log.Warnw("symbol unresolved, omitting",
						"category", category, "symbol", symbol, "error", err)
					return
				}
				mu.Lock()
				snap.SetRows(category, append(snap.Rows(category), *quote))
				mu.Unlock()
			}(category, symbol)
		}
	}

	snap.Indices = make([]models.QuoteRecord, 0, len(req.CustomIndices))
	for _, index := range req.CustomIndices {
		wg.Add(1)
		go func(index models.CustomIndex) {
			defer wg.Done()
			quote, err := s.fetcher.FetchQuote(ctx, index.Symbol)
			if err != nil {
				s.log.Warnw("custom index unresolved, omitting",
					"symbol", index.Symbol, "error", err)
				return
			}
			quote.Name = index.Name
			mu.Lock()
			snap.Indices = append(snap.Indices, *quote)
			mu.Unlock()
		}(index)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Manual assets are pass-through display rows; the user-entered
	// change is a percentage.
	for _, asset := range req.ManualAssets {
		snap.Stocks = append(snap.Stocks, models.QuoteRecord{
			Symbol:        asset.Symbol,
			Price:         asset.Price,
			Change:        asset.Change,
			ChangePercent: asset.Change,
		})
	}

	snap.LastUpdated = time.Now().UTC()
	return snap, nil
}
