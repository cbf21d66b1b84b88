package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jovz/residence-hub/internal/application/refresh"
	"github.com/jovz/residence-hub/internal/application/stats"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	store *refresh.Store
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(store *refresh.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// Get serves GET /api/stats. The summary is computed on demand from the
// current snapshot, so it is always internally consistent with the lists the
// client just fetched.
func (h *StatsHandler) Get(c *gin.Context) {
	snap := h.store.Current()
	summary := stats.Compute(snap)

	c.JSON(http.StatusOK, gin.H{
		"summary":  summary,
		"loadedAt": snap.LoadedAt,
	})
}
