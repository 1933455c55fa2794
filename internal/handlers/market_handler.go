package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "carteira/internal/errors"
	"carteira/internal/marketdata"
	"carteira/internal/models"
	"carteira/internal/refresh"
)

// MarketHandler exposes the market data read side and the refresh
// lifecycle controls.
type MarketHandler struct {
	orchestrator *refresh.Orchestrator
	cache        *marketdata.Cache
	aggregator   refresh.Aggregator
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(orchestrator *refresh.Orchestrator, cache *marketdata.Cache, aggregator refresh.Aggregator) *MarketHandler {
	return &MarketHandler{orchestrator: orchestrator, cache: cache, aggregator: aggregator}
}

// SnapshotResponse pairs the cached snapshot with the refresh status.
type SnapshotResponse struct {
	Snapshot *models.MarketSnapshot `json:"snapshot"`
	Status   refresh.Status         `json:"status"`
}

// GetSnapshot handles reading the cached market snapshot.
// @Summary     Get market snapshot
// @Description Get the last successfully refreshed snapshot plus the refresh status. Snapshot is null before the first successful refresh and after a failed explicit refresh.
// @Tags        market
// @Produce     json
// @Success     200 {object} SnapshotResponse "Snapshot and status"
// @Router      /market/snapshot [get]
func (h *MarketHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, SnapshotResponse{
		Snapshot: h.cache.Snapshot(),
		Status:   h.orchestrator.Status(),
	})
}

// Refresh handles an explicit, user-visible refresh request.
// @Summary     Trigger refresh
// @Description Start a user-visible refresh cycle. Ignored while no market view is active.
// @Tags        market
// @Produce     json
// @Success     202 {object} refresh.Status "Refresh status"
// @Router      /market/refresh [post]
func (h *MarketHandler) Refresh(c *gin.Context) {
	h.orchestrator.Refresh()
	c.JSON(http.StatusAccepted, h.orchestrator.Status())
}

// Activate handles marking a market view as active.
// @Summary     Activate market view
// @Description Mark a market view as active, starting the poll loop and an immediate refresh
// @Tags        market
// @Produce     json
// @Success     200 {object} refresh.Status "Refresh status"
// @Router      /market/activate [post]
func (h *MarketHandler) Activate(c *gin.Context) {
	h.orchestrator.Activate()
	c.JSON(http.StatusOK, h.orchestrator.Status())
}

// Deactivate handles marking the last market view as inactive.
// @Summary     Deactivate market view
// @Description Stop the poll loop and abort any in-flight refresh cycle
// @Tags        market
// @Produce     json
// @Success     200 {object} refresh.Status "Refresh status"
// @Router      /market/deactivate [post]
func (h *MarketHandler) Deactivate(c *gin.Context) {
	h.orchestrator.Deactivate()
	c.JSON(http.StatusOK, h.orchestrator.Status())
}

// Aggregate handles one aggregation batch: it resolves every requested
// symbol and returns the assembled snapshot.
// @Summary     Resolve a refresh batch
// @Description Resolve every symbol in the batch into quotes and return a complete snapshot. Unresolvable symbols are omitted, never fatal.
// @Tags        market
// @Accept      json
// @Produce     json
// @Param       request body models.RefreshRequest true "Refresh batch"
// @Success     200 {object} models.MarketSnapshot "Resolved snapshot"
// @Failure     400 {object} ErrorResponse "Invalid batch"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Security    ApiKeyAuth
// @Router      /market/aggregate [post]
func (h *MarketHandler) Aggregate(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	snap, err := h.aggregator.Aggregate(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrBatchFailed, err))
		return
	}
	c.JSON(http.StatusOK, snap)
}
