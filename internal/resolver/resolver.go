// Package resolver maps logical instrument symbols to provider symbol
// variants and parses provider chart payloads into normalized quotes.
// Everything here is pure: no I/O, no shared state.
package resolver

import (
	"encoding/json"
	"fmt"
	"strings"

	"carteira/internal/models"
)

const (
	// localSuffix is the local-market (B3) suffix the provider expects
	// for Brazilian tickers.
	localSuffix = ".SA"
	// cryptoSuffix is the quote-currency pair form for bare crypto
	// tickers (BTC -> BTC-USD).
	cryptoSuffix = "-USD"
)

// Qualified reports whether the symbol already carries a market or
// asset-class marker. Appending a suffix to a qualified symbol is
// incorrect, so variant inference is skipped for these.
func Qualified(symbol string) bool {
	switch {
	case strings.HasPrefix(symbol, "^"): // index
		return true
	case strings.HasSuffix(symbol, "=X"): // currency pair
		return true
	case strings.HasSuffix(symbol, "=F"): // futures / commodity
		return true
	case strings.Contains(symbol, "."): // market suffix
		return true
	case strings.Contains(symbol, "-"):
		// Read as a crypto quote pair (BTC-USD). This also captures
		// hyphenated share classes like BRK-B, which are then fetched
		// exactly as entered with no inferred variants.
		return true
	}
	return false
}

// Variants returns the ordered provider symbol variants for a logical
// symbol, most specific first: the bare form, then the local-market
// suffix, then the crypto quote-pair form. Qualified symbols get a
// single variant.
func Variants(symbol string) []string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil
	}
	if Qualified(symbol) {
		return []string{symbol}
	}
	return []string{symbol, symbol + localSuffix, symbol + cryptoSuffix}
}

// ParseError reports a provider payload that could not be interpreted
// as a quote. It is distinct from a network failure: the provider
// answered, but not with the expected metadata substructure.
type ParseError struct {
	Symbol string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable quote payload for %s: %s", e.Symbol, e.Reason)
}

// chartResponse mirrors the provider's chart endpoint payload. Only the
// meta substructure is consumed.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta chartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartMeta struct {
	Symbol              string  `json:"symbol"`
	Currency            string  `json:"currency"`
	ShortName           string  `json:"shortName"`
	LongName            string  `json:"longName"`
	RegularMarketPrice  float64 `json:"regularMarketPrice"`
	ChartPreviousClose  float64 `json:"chartPreviousClose"`
	PreviousClose       float64 `json:"previousClose"`
	RegularMarketVolume int64   `json:"regularMarketVolume"`
}

// ParseQuote decodes a provider chart payload into a QuoteRecord. The
// returned record's Symbol is always the requested logical symbol,
// regardless of which provider variant produced the payload.
func ParseQuote(payload []byte, requested string) (models.QuoteRecord, error) {
	var resp chartResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return models.QuoteRecord{}, &ParseError{Symbol: requested, Reason: err.Error()}
	}
	if resp.Chart.Error != nil {
		return models.QuoteRecord{}, &ParseError{
			Symbol: requested,
			Reason: fmt.Sprintf("provider error %s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description),
		}
	}
	if len(resp.Chart.Result) == 0 {
		return models.QuoteRecord{}, &ParseError{Symbol: requested, Reason: "empty result"}
	}

	meta := resp.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 && meta.Symbol == "" {
		return models.QuoteRecord{}, &ParseError{Symbol: requested, Reason: "missing meta"}
	}

	prevClose := meta.ChartPreviousClose
	if prevClose == 0 {
		prevClose = meta.PreviousClose
	}

	change := meta.RegularMarketPrice - prevClose
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = change / prevClose * 100
	}

	name := meta.ShortName
	if name == "" {
		name = meta.LongName
	}

	return models.QuoteRecord{
		Symbol:        requested,
		Name:          name,
		Price:         meta.RegularMarketPrice,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        meta.RegularMarketVolume,
		Currency:      meta.Currency,
	}, nil
}
