package models

// Category identifies one of the dashboard's instrument selection groups.
type Category string

const (
	CategoryStocks      Category = "stocks"
	CategoryCryptos     Category = "cryptos"
	CategoryCommodities Category = "commodities"
	CategoryFIIs        Category = "fiis"
	CategoryETFs        Category = "etfs"
	CategoryCurrencies  Category = "currencies"
)

// categories lists every selection category in display order.
var categories = []Category{
	CategoryStocks,
	CategoryCryptos,
	CategoryCommodities,
	CategoryFIIs,
	CategoryETFs,
	CategoryCurrencies,
}

// Categories returns all selection categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c names a known selection category.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// snapshotRows maps each category to its array inside a MarketSnapshot.
// Category dispatch goes through this table instead of per-category
// switch statements.
var snapshotRows = map[Category]func(*MarketSnapshot) *[]QuoteRecord{
	CategoryStocks:      func(s *MarketSnapshot) *[]QuoteRecord { return &s.Stocks },
	CategoryCryptos:     func(s *MarketSnapshot) *[]QuoteRecord { return &s.Cryptos },
	CategoryCommodities: func(s *MarketSnapshot) *[]QuoteRecord { return &s.Commodities },
	CategoryFIIs:        func(s *MarketSnapshot) *[]QuoteRecord { return &s.FIIs },
	CategoryETFs:        func(s *MarketSnapshot) *[]QuoteRecord { return &s.ETFs },
	CategoryCurrencies:  func(s *MarketSnapshot) *[]QuoteRecord { return &s.Currencies },
}

// requestSymbols maps each category to its symbol list inside a RefreshRequest.
var requestSymbols = map[Category]func(*RefreshRequest) *[]string{
	CategoryStocks:      func(r *RefreshRequest) *[]string { return &r.Stocks },
	CategoryCryptos:     func(r *RefreshRequest) *[]string { return &r.Cryptos },
	CategoryCommodities: func(r *RefreshRequest) *[]string { return &r.Commodities },
	CategoryFIIs:        func(r *RefreshRequest) *[]string { return &r.FIIs },
	CategoryETFs:        func(r *RefreshRequest) *[]string { return &r.ETFs },
	CategoryCurrencies:  func(r *RefreshRequest) *[]string { return &r.Currencies },
}
