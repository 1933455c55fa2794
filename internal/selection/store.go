// Package selection holds the user's curated instrument selection:
// per-category symbol sets, custom indices, and manual assets. All
// mutations are synchronous state transitions guarded by one mutex;
// the store is the single writer of selection state.
package selection

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	apperrors "carteira/internal/errors"
	"carteira/internal/models"
)

// Repository persists selection state. Load runs once at session start;
// Save runs after every successful mutation.
type Repository interface {
	Load(ctx context.Context) (models.SelectionState, error)
	Save(ctx context.Context, state models.SelectionState) error
}

// Store is the in-memory selection state with persistence and
// change-notification hooks. Mutation methods never perform network
// I/O; they only update state that the refresh orchestrator watches.
type Store struct {
	mu       sync.Mutex
	state    models.SelectionState
	repo     Repository
	log      *zap.SugaredLogger
	onChange func()
}

// NewStore creates a store seeded with initial state. repo may be nil
// (no persistence, used in tests).
func NewStore(initial models.SelectionState, repo Repository, log *zap.SugaredLogger) *Store {
	if initial.Selections == nil {
		initial = models.NewSelectionState()
	}
	return &Store{state: initial.Clone(), repo: repo, log: log}
}

// SetOnChange registers a callback invoked after every successful
// mutation, outside the store lock. The refresh orchestrator uses it to
// trigger a new cycle.
func (s *Store) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Snapshot returns an independent copy of the current state, safe to
// hand to a refresh cycle. Later mutations do not affect the copy.
func (s *Store) Snapshot() models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SetCategory replaces the full selection for one category. Incoming
// symbols are de-duplicated; symbols already selected in another
// collection are skipped with a warning so the cross-category
// uniqueness invariant holds.
func (s *Store) SetCategory(category models.Category, symbols []string) error {
	if !category.Valid() {
		return apperrors.ErrInvalidCategory
	}

	s.mu.Lock()
	next := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		symbol := strings.TrimSpace(raw)
		if symbol == "" || containsFold(next, symbol) {
			continue
		}
		if s.selectedOutsideCategory(symbol, category) {
			s.log.Warnw("symbol already selected elsewhere, skipping",
				"category", category, "symbol", symbol)
			continue
		}
		next = append(next, symbol)
	}
	s.state.Selections[category] = next
	s.mu.Unlock()

	s.changed()
	return nil
}

// AddToCategory adds one symbol to a category selection. Adding a
// symbol that is selected anywhere already is a no-op conflict.
func (s *Store) AddToCategory(category models.Category, symbol string) error {
	if !category.Valid() {
		return apperrors.ErrInvalidCategory
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol is required")
	}

	s.mu.Lock()
	if s.selected(symbol) {
		s.mu.Unlock()
		s.log.Warnw("rejected duplicate selection", "category", category, "symbol", symbol)
		return apperrors.ErrSelectionConflict
	}
	s.state.Selections[category] = append(s.state.Selections[category], symbol)
	s.mu.Unlock()

	s.changed()
	return nil
}

// RemoveFromCategory removes one symbol from a category selection.
// Removing an absent symbol is a no-op.
func (s *Store) RemoveFromCategory(category models.Category, symbol string) error {
	if !category.Valid() {
		return apperrors.ErrInvalidCategory
	}

	s.mu.Lock()
	current := s.state.Selections[category]
	next := make([]string, 0, len(current))
	removed := false
	for _, existing := range current {
		if strings.EqualFold(existing, strings.TrimSpace(symbol)) {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	s.state.Selections[category] = next
	s.mu.Unlock()

	if removed {
		s.changed()
	}
	return nil
}

// AddCustomIndex registers a user-named index alias. Rejected as a
// conflict if the symbol is selected anywhere already.
func (s *Store) AddCustomIndex(index models.CustomIndex) error {
	index.Symbol = strings.TrimSpace(index.Symbol)
	index.Name = strings.TrimSpace(index.Name)
	if index.Symbol == "" || index.Name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol and name are required")
	}

	s.mu.Lock()
	if s.selected(index.Symbol) {
		s.mu.Unlock()
		s.log.Warnw("rejected duplicate custom index", "symbol", index.Symbol)
		return apperrors.ErrSelectionConflict
	}
	s.state.CustomIndices = append(s.state.CustomIndices, index)
	s.mu.Unlock()

	s.changed()
	return nil
}

// UpdateCustomIndex replaces the custom index currently keyed by
// oldSymbol. The index may keep its own symbol; moving to a symbol
// selected anywhere else is a conflict.
func (s *Store) UpdateCustomIndex(oldSymbol string, index models.CustomIndex) error {
	index.Symbol = strings.TrimSpace(index.Symbol)
	index.Name = strings.TrimSpace(index.Name)
	if index.Symbol == "" || index.Name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol and name are required")
	}

	s.mu.Lock()
	pos := -1
	for i, existing := range s.state.CustomIndices {
		if strings.EqualFold(existing.Symbol, strings.TrimSpace(oldSymbol)) {
			pos = i
			break
		}
	}
	if pos < 0 {
		s.mu.Unlock()
		return apperrors.ErrCustomIndexNotFound
	}
	if !strings.EqualFold(index.Symbol, s.state.CustomIndices[pos].Symbol) && s.selected(index.Symbol) {
		s.mu.Unlock()
		s.log.Warnw("rejected custom index update, symbol taken", "symbol", index.Symbol)
		return apperrors.ErrSelectionConflict
	}
	s.state.CustomIndices[pos] = index
	s.mu.Unlock()

	s.changed()
	return nil
}

// RemoveCustomIndex deletes the custom index keyed by symbol.
func (s *Store) RemoveCustomIndex(symbol string) error {
	s.mu.Lock()
	next := make([]models.CustomIndex, 0, len(s.state.CustomIndices))
	removed := false
	for _, existing := range s.state.CustomIndices {
		if strings.EqualFold(existing.Symbol, strings.TrimSpace(symbol)) {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	s.state.CustomIndices = next
	s.mu.Unlock()

	if !removed {
		return apperrors.ErrCustomIndexNotFound
	}
	s.changed()
	return nil
}

// AddManualAsset registers a user-entered pass-through instrument.
// Symbols are uppercased; duplicates anywhere are a conflict.
func (s *Store) AddManualAsset(asset models.ManualAsset) error {
	asset.Symbol = strings.ToUpper(strings.TrimSpace(asset.Symbol))
	if asset.Symbol == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol is required")
	}

	s.mu.Lock()
	if s.selected(asset.Symbol) {
		s.mu.Unlock()
		s.log.Warnw("rejected duplicate manual asset", "symbol", asset.Symbol)
		return apperrors.ErrSelectionConflict
	}
	s.state.ManualAssets = append(s.state.ManualAssets, asset)
	s.mu.Unlock()

	s.changed()
	return nil
}

// RemoveManualAsset deletes the manual asset keyed by symbol.
func (s *Store) RemoveManualAsset(symbol string) error {
	s.mu.Lock()
	next := make([]models.ManualAsset, 0, len(s.state.ManualAssets))
	removed := false
	for _, existing := range s.state.ManualAssets {
		if strings.EqualFold(existing.Symbol, strings.TrimSpace(symbol)) {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	s.state.ManualAssets = next
	s.mu.Unlock()

	if !removed {
		return apperrors.ErrManualAssetNotFound
	}
	s.changed()
	return nil
}

// selected reports whether symbol appears in any collection. Callers
// must hold s.mu.
func (s *Store) selected(symbol string) bool {
	return s.selectedOutsideCategory(symbol, "")
}

// selectedOutsideCategory reports whether symbol appears anywhere
// except the given category's own selection. Callers must hold s.mu.
func (s *Store) selectedOutsideCategory(symbol string, except models.Category) bool {
	for category, symbols := range s.state.Selections {
		if category == except {
			continue
		}
		if containsFold(symbols, symbol) {
			return true
		}
	}
	for _, index := range s.state.CustomIndices {
		if strings.EqualFold(index.Symbol, symbol) {
			return true
		}
	}
	for _, asset := range s.state.ManualAssets {
		if strings.EqualFold(asset.Symbol, symbol) {
			return true
		}
	}
	return false
}

// changed persists the new state and notifies the orchestrator. Runs
// outside the store lock; persistence failures are logged, never
// surfaced, so a flaky database cannot undo a user's selection.
func (s *Store) changed() {
	s.mu.Lock()
	state := s.state.Clone()
	repo := s.repo
	notify := s.onChange
	s.mu.Unlock()

	if repo != nil {
		if err := repo.Save(context.Background(), state); err != nil {
			s.log.Errorw("failed to persist selection state", "error", err)
		}
	}
	if notify != nil {
		notify()
	}
}

func containsFold(symbols []string, symbol string) bool {
	for _, existing := range symbols {
		if strings.EqualFold(existing, symbol) {
			return true
		}
	}
	return false
}
