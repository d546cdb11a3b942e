package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"panotour/internal/filestore"
	"panotour/internal/middleware"
	"panotour/internal/models"
	"panotour/internal/services"
	"panotour/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SceneHandler serves /api/scenes
type SceneHandler struct {
	sceneService *services.SceneService
	store        *filestore.Store
}

// NewSceneHandler creates a new scene handler
func NewSceneHandler(sceneService *services.SceneService, store *filestore.Store) *SceneHandler {
	return &SceneHandler{sceneService: sceneService, store: store}
}

// Create adds a scene to a group. A JSON body references an already uploaded
// image; a multipart form (group_id, name, file) uploads the panorama first.
// POST /api/scenes
func (h *SceneHandler) Create(c *fiber.Ctx) error {
	var req models.CreateSceneRequest
	var saved *filestore.SavedFile

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		groupID, err := strconv.ParseInt(c.FormValue("group_id"), 10, 64)
		if err != nil || groupID <= 0 {
			return badRequest("Invalid group_id")
		}
		req.GroupID = groupID
		req.Name = c.FormValue("name")

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return badRequest("No file provided or invalid file")
		}

		// Reject a bad form before anything is written to disk
		req.ImageURL = fileHeader.Filename
		if err := validation.ValidateStruct(&req); err != nil {
			return badRequest(err.Error())
		}

		saved, err = h.store.SaveMultipart(filestore.DirUploads, fileHeader, filestore.ImageTypes)
		if err != nil {
			return uploadError(c, err)
		}
		req.ImageURL = saved.URL
		services.RecordUpload("scene")
	} else if err := parseBody(c, &req); err != nil {
		return err
	}

	scene, err := h.sceneService.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		if saved != nil {
			if rmErr := h.store.Remove(saved.URL); rmErr != nil {
				log.Printf("⚠️ [UPLOAD] Failed to clean up %s: %v", saved.URL, rmErr)
			}
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(scene)
}

// Get returns a scene with its hotspots
// GET /api/scenes/:id
func (h *SceneHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	scene, err := h.sceneService.Get(c.UserContext(), id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(scene)
}

// Update applies the supplied fields
// PUT /api/scenes/:id
func (h *SceneHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateSceneRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	scene, err := h.sceneService.Update(c.UserContext(), id, middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(scene)
}

// Delete removes a scene and its hotspots
// DELETE /api/scenes/:id
func (h *SceneHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.sceneService.Delete(c.UserContext(), id, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Reorder assigns sort_order by position in scene_ids
// POST /api/scenes/reorder
func (h *SceneHandler) Reorder(c *fiber.Ctx) error {
	var req models.ReorderScenesRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	scenes, err := h.sceneService.Reorder(c.UserContext(), middleware.UserID(c), req.GroupID, req.SceneIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(scenes)
}

// uploadError maps file store failures to 400 or 500
func uploadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, filestore.ErrDisallowedType) || errors.Is(err, filestore.ErrMalformedDataURI) {
		return badRequest(strings.ToUpper(err.Error()[:1]) + err.Error()[1:])
	}
	log.Printf("❌ [UPLOAD] Failed to store file: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to save file",
	})
}
