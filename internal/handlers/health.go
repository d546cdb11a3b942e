package handlers

import (
	"context"
	"time"

	"panotour/internal/database"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Handle responds with server health status; 503 when the database is unreachable
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	body := fiber.Map{
		"status":    "healthy",
		"database":  "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if err := h.db.PingContext(ctx); err != nil {
		status = fiber.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = "unreachable"
	}
	return c.Status(status).JSON(body)
}
