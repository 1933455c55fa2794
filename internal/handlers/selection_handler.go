package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "carteira/internal/errors"
	"carteira/internal/models"
	"carteira/internal/selection"
)

// SelectionHandler exposes the asset-selection operations.
type SelectionHandler struct {
	store *selection.Store
}

// NewSelectionHandler creates a new SelectionHandler.
func NewSelectionHandler(store *selection.Store) *SelectionHandler {
	return &SelectionHandler{store: store}
}

// SetCategoryRequest replaces a category's full selection.
type SetCategoryRequest struct {
	Symbols []string `json:"symbols" binding:"required,dive,symbol"`
}

// AddSymbolRequest adds one symbol to a category selection.
type AddSymbolRequest struct {
	Symbol string `json:"symbol" binding:"required,symbol"`
}

// CustomIndexRequest creates or updates a custom index.
type CustomIndexRequest struct {
	Symbol string `json:"symbol" binding:"required,symbol"`
	Name   string `json:"name" binding:"required,min=1,max=100"`
}

// ManualAssetRequest creates a manual asset.
type ManualAssetRequest struct {
	Symbol string  `json:"symbol" binding:"required,symbol"`
	Price  float64 `json:"price" binding:"required,gt=0"`
	Change float64 `json:"change"`
}

// GetState handles reading the full selection state.
// @Summary     Get selection state
// @Description Get the per-category selections, custom indices, and manual assets
// @Tags        selections
// @Produce     json
// @Success     200 {object} models.SelectionState "Selection state"
// @Router      /selections [get]
func (h *SelectionHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"selection": h.store.Snapshot()})
}

// SetCategory handles replacing one category's selection.
// @Summary     Replace category selection
// @Tags        selections
// @Accept      json
// @Produce     json
// @Param       category path string true "Selection category"
// @Param       request body SetCategoryRequest true "Symbols"
// @Success     200 {object} models.SelectionState "Updated state"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /selections/{category} [put]
func (h *SelectionHandler) SetCategory(c *gin.Context) {
	var req SetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category := models.Category(c.Param("category"))
	if err := h.store.SetCategory(category, req.Symbols); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": h.store.Snapshot()})
}

// AddSymbol handles adding one symbol to a category.
// @Summary     Add symbol to category
// @Tags        selections
// @Accept      json
// @Produce     json
// @Param       category path string true "Selection category"
// @Param       request body AddSymbolRequest true "Symbol"
// @Success     201 {object} models.SelectionState "Updated state"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Symbol already selected"
// @Router      /selections/{category}/symbols [post]
func (h *SelectionHandler) AddSymbol(c *gin.Context) {
	var req AddSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category := models.Category(c.Param("category"))
	if err := h.store.AddToCategory(category, req.Symbol); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"selection": h.store.Snapshot()})
}

// RemoveSymbol handles removing one symbol from a category.
// @Summary     Remove symbol from category
// @Tags        selections
// @Produce     json
// @Param       category path string true "Selection category"
// @Param       symbol path string true "Symbol"
// @Success     200 {object} models.SelectionState "Updated state"
// @Failure     400 {object} ErrorResponse "Unknown category"
// @Router      /selections/{category}/symbols/{symbol} [delete]
func (h *SelectionHandler) RemoveSymbol(c *gin.Context) {
	category := models.Category(c.Param("category"))
	if err := h.store.RemoveFromCategory(category, c.Param("symbol")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": h.store.Snapshot()})
}

// AddCustomIndex handles creating a custom index.
// @Summary     Add custom index
// @Tags        selections
// @Accept      json
// @Produce     json
// @Param       request body CustomIndexRequest true "Custom index"
// @Success     201 {object} models.SelectionState "Updated state"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Symbol already selected"
// @Router      /selections/indices [post]
func (h *SelectionHandler) AddCustomIndex(c *gin.Context) {
	var req CustomIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.store.AddCustomIndex(models.CustomIndex{Symbol: req.Symbol, Name: req.Name}); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"selection": h.store.Snapshot()})
}

// UpdateCustomIndex handles editing a custom index, matched by its old symbol.
// @Summary     Update custom index
// @Tags        selections
// @Accept      json
// @Produce     json
// @Param       symbol path string true "Current symbol of the index"
// @Param       request body CustomIndexRequest true "New symbol and name"
// @Success     200 {object} models.SelectionState "Updated state"
// @Failure     404 {object} ErrorResponse "Custom index not found"
// @Failure     409 {object} ErrorResponse "Symbol already selected"
// @Router      /selections/indices/{symbol} [put]
func (h *SelectionHandler) UpdateCustomIndex(c *gin.Context) {
	var req CustomIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	err := h.store.UpdateCustomIndex(c.Param("symbol"), models.CustomIndex{Symbol: req.Symbol, Name: req.Name})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": h.store.Snapshot()})
}

// RemoveCustomIndex handles deleting a custom index.
// @Summary     Remove custom index
// @Tags        selections
// @Produce     json
// @Param       symbol path string true "Symbol"
// @Success     200 {object} models.SelectionState "Updated state"
// @Failure     404 {object} ErrorResponse "Custom index not found"
// @Router      /selections/indices/{symbol} [delete]
func (h *SelectionHandler) RemoveCustomIndex(c *gin.Context) {
	if err := h.store.RemoveCustomIndex(c.Param("symbol")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": h.store.Snapshot()})
}

// AddManualAsset handles creating a manual asset.
// @Summary     Add manual asset
// @Tags        selections
// @Accept      json
// @Produce     json
// @Param       request body ManualAssetRequest true "Manual asset"
// @Success     201 {object} models.SelectionState "Updated state"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Symbol already selected"
// @Router      /selections/manual-assets [post]
func (h *SelectionHandler) AddManualAsset(c *gin.Context) {
	var req ManualAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset := models.ManualAsset{Symbol: req.Symbol, Price: req.Price, Change: req.Change}
	if err := h.store.AddManualAsset(asset); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"selection": h.store.Snapshot()})
}

// RemoveManualAsset handles deleting a manual asset.
// @Summary     Remove manual asset
// @Tags        selections
// @Produce     json
// @Param       symbol path string true "Symbol"
// @Success     200 {object} models.SelectionState "Updated state"
// @Failure     404 {object} ErrorResponse "Manual asset not found"
// @Router      /selections/manual-assets/{symbol} [delete]
func (h *SelectionHandler) RemoveManualAsset(c *gin.Context) {
	if err := h.store.RemoveManualAsset(c.Param("symbol")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": h.store.Snapshot()})
}
