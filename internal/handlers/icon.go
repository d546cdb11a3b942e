package handlers

import (
	"log"
	"mime"
	"strings"

	"panotour/internal/filestore"
	"panotour/internal/logging"
	"panotour/internal/middleware"
	"panotour/internal/services"

	"github.com/gofiber/fiber/v2"
)

// IconHandler serves /api/icons
type IconHandler struct {
	iconService *services.IconService
	store       *filestore.Store
}

// NewIconHandler creates a new icon handler
func NewIconHandler(iconService *services.IconService, store *filestore.Store) *IconHandler {
	return &IconHandler{iconService: iconService, store: store}
}

// List returns system icons plus the caller's custom icons
// GET /api/icons
func (h *IconHandler) List(c *fiber.Ctx) error {
	icons, err := h.iconService.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(icons)
}

// Upload stores a custom icon (multipart "file", optional "name").
// The declared content type must be png, jpeg, gif or svg.
// POST /api/icons
func (h *IconHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest("No file provided or invalid file")
	}

	declared := fileHeader.Header.Get(fiber.HeaderContentType)
	mimeType, _, err := mime.ParseMediaType(declared)
	if err != nil || !filestore.IconTypes[strings.ToLower(mimeType)] {
		log.Printf("⚠️ [ICONS] Rejected icon upload with type %q", declared)
		return badRequest("Unsupported file type. Allowed: png, jpeg, gif, svg")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = filestore.Stem(filestore.SanitizeFilename(fileHeader.Filename))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return badRequest("No file provided or invalid file")
	}
	defer src.Close()

	saved, err := h.store.Save(filestore.DirCustomIcons, fileHeader.Filename, src)
	if err != nil {
		return uploadError(c, err)
	}

	icon, err := h.iconService.CreateCustom(c.UserContext(), middleware.UserID(c), name, saved.URL)
	if err != nil {
		if rmErr := h.store.Remove(saved.URL); rmErr != nil {
			log.Printf("⚠️ [ICONS] Failed to clean up %s: %v", saved.URL, rmErr)
		}
		return respondError(c, err)
	}

	services.RecordUpload("icon")
	logging.WithUser(middleware.Username(c)).Info("icon uploaded", "icon_id", icon.ID, "name", icon.Name)
	return c.Status(fiber.StatusCreated).JSON(icon)
}

// Delete removes one of the caller's custom icons
// DELETE /api/icons/:id
func (h *IconHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.iconService.Delete(c.UserContext(), id, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
