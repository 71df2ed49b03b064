package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-matcher/internal/matcher"
	"github.com/codyseavey/tcg-matcher/internal/models"
	"github.com/codyseavey/tcg-matcher/internal/services"
)

type ConsolidateRequest struct {
	TCGType string              `json:"tcg_type"`
	Results models.StoreResults `json:"results"`
}

type CompareRequest struct {
	TCGType    string           `json:"tcg_type"`
	BaseStore  string           `json:"base_store" binding:"required"`
	OtherStore string           `json:"other_store" binding:"required"`
	Threshold  *float64         `json:"threshold"`
	Listings   []models.Listing `json:"listings"`
}

type ConsolidationHandler struct {
	consolidationService *services.ConsolidationService
}

func NewConsolidationHandler(consolidationService *services.ConsolidationService) *ConsolidationHandler {
	return &ConsolidationHandler{
		consolidationService: consolidationService,
	}
}

// Consolidate flattens per-store scraper output into a single listing slice
func (h *ConsolidationHandler) Consolidate(c *gin.Context) {
	var req ConsolidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var game models.Game
	if req.TCGType != "" {
		g, err := matcher.ParseGame(req.TCGType)
		if err != nil {
			respondError(c, err)
			return
		}
		game = g
	}

	listings := h.consolidationService.Consolidate(game, req.Results)
	if listings == nil {
		listings = []models.Listing{}
	}

	c.JSON(http.StatusOK, models.ListingSearchResult{
		Listings:   listings,
		TotalCount: len(listings),
	})
}

// Compare matches one store's listings against another's and reports price deltas
func (h *ConsolidationHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BaseStore == req.OtherStore {
		c.JSON(http.StatusBadRequest, gin.H{"error": "base_store and other_store must differ"})
		return
	}
	if !validThreshold(req.Threshold) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be between 0 and 1"})
		return
	}

	summary, err := h.consolidationService.Compare(c.Request.Context(), req.Listings, req.BaseStore, req.OtherStore, req.TCGType, req.Threshold)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
