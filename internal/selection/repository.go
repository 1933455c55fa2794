package selection

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "carteira/internal/errors"
	"carteira/internal/models"
)

// gormRepository persists selection state in three tables:
// selected_symbols, custom_indices, and manual_assets.
type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed selection repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Load reads the persisted selection state. An empty database yields
// the default selection so a fresh install renders a populated
// dashboard.
func (r *gormRepository) Load(ctx context.Context) (models.SelectionState, error) {
	var symbols []models.SelectedSymbol
	if err := r.db.WithContext(ctx).Find(&symbols).Error; err != nil {
		return models.SelectionState{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var indices []models.CustomIndexRow
	if err := r.db.WithContext(ctx).Find(&indices).Error; err != nil {
		return models.SelectionState{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var assets []models.ManualAssetRow
	if err := r.db.WithContext(ctx).Find(&assets).Error; err != nil {
		return models.SelectionState{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(symbols) == 0 && len(indices) == 0 && len(assets) == 0 {
		return models.DefaultSelectionState(), nil
	}

	state := models.NewSelectionState()
	for _, row := range symbols {
		category := models.Category(row.Category)
		if !category.Valid() {
			continue
		}
		state.Selections[category] = append(state.Selections[category], row.Symbol)
	}
	for _, row := range indices {
		state.CustomIndices = append(state.CustomIndices, models.CustomIndex{Symbol: row.Symbol, Name: row.Name})
	}
	for _, row := range assets {
		state.ManualAssets = append(state.ManualAssets, models.ManualAsset{
			Symbol: row.Symbol,
			Price:  row.Price,
			Change: row.Change,
		})
	}
	return state, nil
}

// Save replaces the persisted state wholesale inside one transaction,
// matching the store's replace-not-merge semantics.
func (r *gormRepository) Save(ctx context.Context, state models.SelectionState) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(&models.SelectedSymbol{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(&models.CustomIndexRow{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(&models.ManualAssetRow{}).Error; err != nil {
			return err
		}

		for _, category := range models.Categories() {
			for _, symbol := range state.Selections[category] {
				row := models.SelectedSymbol{Category: string(category), Symbol: symbol}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
					return err
				}
			}
		}
		for _, index := range state.CustomIndices {
			row := models.CustomIndexRow{Symbol: index.Symbol, Name: index.Name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		for _, asset := range state.ManualAssets {
			row := models.ManualAssetRow{Symbol: asset.Symbol, Price: asset.Price, Change: asset.Change}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
