package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/tcg-matcher/internal/matcher"
	"github.com/codyseavey/tcg-matcher/internal/services"
)

// CardNames is a JSON array of card names. Null or non-string entries decode
// as "" so one bad scraper row never rejects a whole batch.
type CardNames []string

func (n *CardNames) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	names := make(CardNames, len(raw))
	for i, r := range raw {
		var s string
		if json.Unmarshal(r, &s) == nil {
			names[i] = s
		}
	}
	*n = names
	return nil
}

type MatchRequest struct {
	Queries    CardNames `json:"queries"`
	Candidates CardNames `json:"candidates"`
	TCGType    string    `json:"tcg_type"`
	Threshold  *float64  `json:"threshold"`
}

type DetectRequest struct {
	Names CardNames `json:"names"`
}

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// Match resolves every query against the candidate list
func (h *MatchHandler) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validThreshold(req.Threshold) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be between 0 and 1"})
		return
	}

	run, err := h.matchService.Run(c.Request.Context(), services.MatchRequest{
		Queries:    req.Queries,
		Candidates: req.Candidates,
		Game:       req.TCGType,
		Threshold:  req.Threshold,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

// Detect guesses which game a list of names belongs to
func (h *MatchHandler) Detect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tcg_detected": h.matchService.Detect(req.Names),
	})
}

// GetRunGroups returns the candidate buckets built by a recent run
func (h *MatchHandler) GetRunGroups(c *gin.Context) {
	runID := c.Param("id")

	g, ok := h.matchService.Groups(runID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found or expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":      runID,
		"keys":        g.Keys,
		"groups":      g,
		"group_count": g.Len(),
		"candidates":  g.Size(),
	})
}

// validThreshold accepts an absent threshold or one in [0, 1]
func validThreshold(t *float64) bool {
	return t == nil || (*t >= 0 && *t <= 1)
}

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	var unsupported *matcher.UnsupportedGameError
	switch {
	case errors.As(err, &unsupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": unsupported.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
