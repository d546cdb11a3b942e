package handlers

import (
	"panotour/internal/middleware"
	"panotour/internal/models"
	"panotour/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HotspotHandler serves /api/hotspots
type HotspotHandler struct {
	hotspotService *services.HotspotService
}

// NewHotspotHandler creates a new hotspot handler
func NewHotspotHandler(hotspotService *services.HotspotService) *HotspotHandler {
	return &HotspotHandler{hotspotService: hotspotService}
}

// List returns the hotspots placed on a scene
// GET /api/hotspots?scene_id=
func (h *HotspotHandler) List(c *fiber.Ctx) error {
	sceneID, err := idQuery(c, "scene_id")
	if err != nil {
		return err
	}

	hotspots, err := h.hotspotService.List(c.UserContext(), sceneID, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(hotspots)
}

// Create places a hotspot on a scene
// POST /api/hotspots
func (h *HotspotHandler) Create(c *fiber.Ctx) error {
	var req models.CreateHotspotRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	hotspot, err := h.hotspotService.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(hotspot)
}

// Update applies the supplied fields
// PUT /api/hotspots/:id
func (h *HotspotHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateHotspotRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	hotspot, err := h.hotspotService.Update(c.UserContext(), id, middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(hotspot)
}

// Delete removes a hotspot
// DELETE /api/hotspots/:id
func (h *HotspotHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.hotspotService.Delete(c.UserContext(), id, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// BatchDelete removes the caller's hotspots among the ids
// POST /api/hotspots/batch-delete
func (h *HotspotHandler) BatchDelete(c *fiber.Ctx) error {
	var req models.BatchDeleteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	n, err := h.hotspotService.BatchDelete(c.UserContext(), req.IDs, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.BatchDeleteResponse{Deleted: n})
}
