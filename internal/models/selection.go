package models

// CustomIndex is a user-named alias over a provider index symbol,
// e.g. ^BVSP displayed as "IBOVESPA". Keyed by Symbol.
type CustomIndex struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// ManualAsset is a user-entered instrument that is not resolved by the
// quote provider. Change is a percentage supplied by the user.
type ManualAsset struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

// SelectionState is the full asset-selection state: per-category symbol
// sets plus custom indices and manual assets. It is a value object;
// Clone produces an independent copy safe to hand to a refresh cycle.
type SelectionState struct {
	Selections    map[Category][]string `json:"selections"`
	CustomIndices []CustomIndex         `json:"customIndices"`
	ManualAssets  []ManualAsset         `json:"manualAssets"`
}

// NewSelectionState returns an empty state with every category present.
func NewSelectionState() SelectionState {
	s := SelectionState{Selections: make(map[Category][]string, len(categories))}
	for _, c := range categories {
		s.Selections[c] = []string{}
	}
	return s
}

// Clone returns a deep copy of the state.
func (s SelectionState) Clone() SelectionState {
	out := SelectionState{
		Selections:    make(map[Category][]string, len(s.Selections)),
		CustomIndices: make([]CustomIndex, len(s.CustomIndices)),
		ManualAssets:  make([]ManualAsset, len(s.ManualAssets)),
	}
	for c, symbols := range s.Selections {
		out.Selections[c] = append([]string{}, symbols...)
	}
	copy(out.CustomIndices, s.CustomIndices)
	copy(out.ManualAssets, s.ManualAssets)
	return out
}

// BuildRequest converts the state into the batch sent to the
// aggregation endpoint.
func (s SelectionState) BuildRequest() RefreshRequest {
	var req RefreshRequest
	for _, c := range categories {
		req.SetSymbols(c, append([]string{}, s.Selections[c]...))
	}
	req.ManualAssets = append([]ManualAsset{}, s.ManualAssets...)
	req.CustomIndices = append([]CustomIndex{}, s.CustomIndices...)
	return req
}

// DefaultSelectionState seeds a first session before the user has
// curated anything.
func DefaultSelectionState() SelectionState {
	s := NewSelectionState()
	s.Selections[CategoryStocks] = []string{"PETR4.SA", "VALE3.SA", "ITUB4.SA"}
	s.Selections[CategoryCryptos] = []string{"BTC-USD", "ETH-USD"}
	s.Selections[CategoryCommodities] = []string{"GC=F", "CL=F"}
	s.Selections[CategoryFIIs] = []string{"HGLG11.SA", "MXRF11.SA"}
	s.Selections[CategoryETFs] = []string{"BOVA11.SA", "IVVB11.SA"}
	s.Selections[CategoryCurrencies] = []string{"BRL=X", "EURBRL=X"}
	s.CustomIndices = []CustomIndex{
		{Symbol: "^BVSP", Name: "IBOVESPA"},
		{Symbol: "^GSPC", Name: "S&P 500"},
	}
	return s
}

// SelectedSymbol is one persisted category selection entry.
type SelectedSymbol struct {
	Base
	Category string `gorm:"size:20;uniqueIndex:idx_category_symbol;not null" json:"category"`
	Symbol   string `gorm:"size:20;uniqueIndex:idx_category_symbol;not null" json:"symbol"`
}

// CustomIndexRow is one persisted custom index.
type CustomIndexRow struct {
	Base
	Symbol string `gorm:"size:20;uniqueIndex;not null" json:"symbol"`
	Name   string `gorm:"size:100;not null" json:"name"`
}

// TableName overrides GORM's pluralization for CustomIndexRow.
func (CustomIndexRow) TableName() string { return "custom_indices" }

// ManualAssetRow is one persisted manual asset.
type ManualAssetRow struct {
	Base
	Symbol string  `gorm:"size:20;uniqueIndex;not null" json:"symbol"`
	Price  float64 `gorm:"not null" json:"price"`
	Change float64 `gorm:"not null" json:"change"`
}

// TableName overrides GORM's pluralization for ManualAssetRow.
func (ManualAssetRow) TableName() string { return "manual_assets" }
