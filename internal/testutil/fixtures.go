package testutil

import (
	"carteira/internal/models"
)

// SmallSelection returns a compact selection state used across tests:
// two stocks, one crypto, one custom index, and one manual asset.
func SmallSelection() models.SelectionState {
	state := models.NewSelectionState()
	state.Selections[models.CategoryStocks] = []string{"PETR4.SA", "VALE3.SA"}
	state.Selections[models.CategoryCryptos] = []string{"BTC-USD"}
	state.CustomIndices = []models.CustomIndex{{Symbol: "^BVSP", Name: "IBOVESPA"}}
	state.ManualAssets = []models.ManualAsset{{Symbol: "XPTO", Price: 12.34, Change: 1.5}}
	return state
}

// Quote builds a QuoteRecord with deterministic derived fields for
// aggregation tests.
func Quote(symbol string, price float64) models.QuoteRecord {
	return models.QuoteRecord{
		Symbol:        symbol,
		Price:         price,
		Change:        1.0,
		ChangePercent: 1.0,
		Currency:      "BRL",
	}
}
