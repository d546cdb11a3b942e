package handlers

import (
	"panotour/internal/middleware"
	"panotour/internal/models"
	"panotour/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SceneGroupHandler serves /api/scene-groups
type SceneGroupHandler struct {
	groupService *services.SceneGroupService
}

// NewSceneGroupHandler creates a new scene group handler
func NewSceneGroupHandler(groupService *services.SceneGroupService) *SceneGroupHandler {
	return &SceneGroupHandler{groupService: groupService}
}

// List returns the groups of a project
// GET /api/scene-groups?project_id=
func (h *SceneGroupHandler) List(c *fiber.Ctx) error {
	projectID, err := idQuery(c, "project_id")
	if err != nil {
		return err
	}

	groups, err := h.groupService.List(c.UserContext(), projectID, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(groups)
}

// Create adds a group to a project
// POST /api/scene-groups
func (h *SceneGroupHandler) Create(c *fiber.Ctx) error {
	var req models.CreateSceneGroupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	group, err := h.groupService.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// Update renames a group
// PUT /api/scene-groups/:id
func (h *SceneGroupHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateSceneGroupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	group, err := h.groupService.Update(c.UserContext(), id, middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(group)
}

// Delete removes a group with its scenes and hotspots
// DELETE /api/scene-groups/:id
func (h *SceneGroupHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.groupService.Delete(c.UserContext(), id, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
