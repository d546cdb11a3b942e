package handlers

import (
	"panotour/internal/logging"
	"panotour/internal/middleware"
	"panotour/internal/models"
	"panotour/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler serves /api/projects
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List returns the caller's projects, most recently edited first
// GET /api/projects
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.projectService.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

// Create adds a project with its default group and returns the tree
// POST /api/projects
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req models.CreateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	tree, err := h.projectService.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	logging.WithProject(logging.WithUser(middleware.Username(c)), tree.ID).Info("project created", "name", tree.Name)
	return c.Status(fiber.StatusCreated).JSON(tree)
}

// Get returns the full project tree
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	tree, err := h.projectService.GetTree(c.UserContext(), id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tree)
}

// Update applies the supplied fields
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.Update(c.UserContext(), id, middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

// Delete removes a project and everything beneath it
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.projectService.Delete(c.UserContext(), id, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	logging.WithProject(logging.WithUser(middleware.Username(c)), id).Info("project deleted")
	return c.JSON(fiber.Map{"ok": true})
}

// BatchDelete removes the caller's projects among the ids
// POST /api/projects/batch-delete
func (h *ProjectHandler) BatchDelete(c *fiber.Ctx) error {
	var req models.BatchDeleteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	n, err := h.projectService.BatchDelete(c.UserContext(), req.IDs, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	logging.WithUser(middleware.Username(c)).Info("projects batch deleted", "requested", len(req.IDs), "deleted", n)
	return c.JSON(models.BatchDeleteResponse{Deleted: n})
}
