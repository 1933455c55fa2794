package fetcher

import (
	"strings"

	"carteira/internal/models"
)

// fallbackQuotes holds static quotes for symbols whose provider lookups
// are known to be unreliable (commodity futures and the local index are
// frequent offenders). Served only after every variant has failed, so a
// degraded row still renders instead of a hole in the dashboard.
var fallbackQuotes = map[string]models.QuoteRecord{
	"GC=F":  {Symbol: "GC=F", Name: "Gold", Price: 2350.00, Currency: "USD"},
	"SI=F":  {Symbol: "SI=F", Name: "Silver", Price: 28.50, Currency: "USD"},
	"CL=F":  {Symbol: "CL=F", Name: "Crude Oil WTI", Price: 78.00, Currency: "USD"},
	"BZ=F":  {Symbol: "BZ=F", Name: "Brent Crude", Price: 82.00, Currency: "USD"},
	"^BVSP": {Symbol: "^BVSP", Name: "IBOVESPA", Price: 128000.00, Currency: "BRL"},
	"BRL=X": {Symbol: "BRL=X", Name: "USD/BRL", Price: 5.05, Currency: "BRL"},
}

// FallbackQuote returns the static fallback record for a symbol, if one
// exists. The returned record carries the caller's original symbol
// casing and is a copy, safe to modify.
func FallbackQuote(symbol string) (*models.QuoteRecord, bool) {
	fb, ok := fallbackQuotes[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return nil, false
	}
	out := fb
	out.Symbol = strings.TrimSpace(symbol)
	return &out, true
}
