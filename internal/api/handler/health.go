package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jovz/residence-hub/internal/application/refresh"
	"github.com/jovz/residence-hub/pkg/common/timeutil"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store *refresh.Store
	clock timeutil.Provider
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(store *refresh.Store, clock timeutil.Provider) *HealthHandler {
	return &HealthHandler{store: store, clock: clock}
}

// Live serves GET /healthz. It answers as long as the process is up.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready serves GET /readyz. The service is ready once a snapshot has been
// loaded; until then reads would serve an empty property.
func (h *HealthHandler) Ready(c *gin.Context) {
	snap := h.store.Current()
	if snap.LoadedAt.IsZero() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "waiting for first snapshot",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"snapshotAge": h.clock.Now().Sub(snap.LoadedAt).Truncate(time.Millisecond).String(),
		"loadedAt":    snap.LoadedAt,
	})
}
