package handlers

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache cache.Pinger
}

func NewHealthHandler(db *gorm.DB, store cache.Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: store}
}

// Check reports healthy only when both the database and the cache answer.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx := c.UserContext()
	timestamp := time.Now().UTC().Format(time.RFC3339)

	unhealthy := func(component string, err error) error {
		slog.Error("health check failed", "component", component, "error", err.Error())
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
			Status:    "unhealthy",
			Error:     component + " unavailable",
			Timestamp: timestamp,
		})
	}

	if err := database.Ping(ctx, h.db); err != nil {
		return unhealthy("database", err)
	}
	if err := h.cache.Ping(ctx); err != nil {
		return unhealthy("cache", err)
	}

	return c.JSON(dto.HealthResponse{
		Status:    "healthy",
		Timestamp: timestamp,
		Services: map[string]string{
			"database": "healthy",
			"cache":    "healthy",
		},
	})
}
