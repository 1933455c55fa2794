package models

import "time"

// QuoteRecord is the normalized quote for one instrument. It is produced
// by the symbol resolver from a raw provider payload and never mutated
// afterwards. Symbol is always the logical symbol the caller asked for,
// not the provider variant that happened to resolve.
type QuoteRecord struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume,omitempty"`
	Currency      string  `json:"currency,omitempty"`
}

// MarketSnapshot is the complete quote dataset the presentation layer
// reads. A refresh cycle either replaces it wholesale or leaves the
// previous snapshot untouched; it is never partially mutated.
type MarketSnapshot struct {
	Stocks      []QuoteRecord `json:"stocks"`
	Cryptos     []QuoteRecord `json:"cryptos"`
	Commodities []QuoteRecord `json:"commodities"`
	FIIs        []QuoteRecord `json:"fiis"`
	ETFs        []QuoteRecord `json:"etfs"`
	Currencies  []QuoteRecord `json:"currencies"`
	Indices     []QuoteRecord `json:"indices"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

// Rows returns the snapshot's array for the given category.
func (s *MarketSnapshot) Rows(c Category) []QuoteRecord {
	if field, ok := snapshotRows[c]; ok {
		return *field(s)
	}
	return nil
}

// SetRows replaces the snapshot's array for the given category.
func (s *MarketSnapshot) SetRows(c Category, rows []QuoteRecord) {
	if field, ok := snapshotRows[c]; ok {
		*field(s) = rows
	}
}

// RefreshRequest is the batch sent to the aggregation endpoint. It is
// built from a single consistent selection snapshot at cycle start and
// has no identity beyond the in-flight cycle that owns it.
type RefreshRequest struct {
	Stocks        []string      `json:"symbols"`
	Cryptos       []string      `json:"cryptos"`
	Commodities   []string      `json:"commodities"`
	FIIs          []string      `json:"fiis"`
	ETFs          []string      `json:"etfs"`
	Currencies    []string      `json:"currencies"`
	ManualAssets  []ManualAsset `json:"manualAssets"`
	CustomIndices []CustomIndex `json:"customIndicesList"`
}

// Symbols returns the request's symbol list for the given category.
func (r *RefreshRequest) Symbols(c Category) []string {
	if field, ok := requestSymbols[c]; ok {
		return *field(r)
	}
	return nil
}

// SetSymbols replaces the request's symbol list for the given category.
func (r *RefreshRequest) SetSymbols(c Category, symbols []string) {
	if field, ok := requestSymbols[c]; ok {
		*field(r) = symbols
	}
}

// Empty reports whether the request carries nothing to resolve.
func (r *RefreshRequest) Empty() bool {
	for _, c := range Categories() {
		if len(r.Symbols(c)) > 0 {
			return false
		}
	}
	return len(r.ManualAssets) == 0 && len(r.CustomIndices) == 0
}
