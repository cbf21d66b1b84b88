// Package routes assembles the gin engine for the management API.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jovz/residence-hub/internal/api/handler"
	"github.com/jovz/residence-hub/internal/api/mid"
	"github.com/jovz/residence-hub/pkg/common/logger"
)

// Config carries everything the router needs.
type Config struct {
	Log           *logger.Logger
	Metrics       mid.APIMetrics
	Tenants       *handler.TenantHandler
	Rooms         *handler.RoomHandler
	Stats         *handler.StatsHandler
	Announcements *handler.AnnouncementHandler
	Health        *handler.HealthHandler
}

// New builds the engine with middleware and all routes registered.
func New(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), mid.RequestID(), mid.Logger(cfg.Log))
	if cfg.Metrics != nil {
		engine.Use(mid.Metrics(cfg.Metrics))
	}

	engine.GET("/healthz", cfg.Health.Live)
	engine.GET("/readyz", cfg.Health.Ready)

	api := engine.Group("/api")
	{
		api.GET("/tenants", cfg.Tenants.List)
		api.POST("/tenants", cfg.Tenants.Create)
		api.PUT("/tenants/:id", cfg.Tenants.Update)
		api.DELETE("/tenants/:id", cfg.Tenants.Delete)

		api.GET("/rooms", cfg.Rooms.List)
		api.POST("/rooms", cfg.Rooms.Create)
		api.PUT("/rooms/:id", cfg.Rooms.Update)
		api.DELETE("/rooms/:id", cfg.Rooms.Delete)
		api.PUT("/rooms/:id/assign/:tenantId", cfg.Rooms.Assign)
		api.PUT("/rooms/:id/vacate", cfg.Rooms.Vacate)

		api.GET("/stats", cfg.Stats.Get)

		api.GET("/announcements", cfg.Announcements.List)
		api.POST("/announcements", cfg.Announcements.Create)
		api.PUT("/announcements/:id", cfg.Announcements.Update)
		api.DELETE("/announcements/:id", cfg.Announcements.Delete)
	}

	return engine
}
