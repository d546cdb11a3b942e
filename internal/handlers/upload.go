package handlers

import (
	"panotour/internal/filestore"
	"panotour/internal/logging"
	"panotour/internal/middleware"
	"panotour/internal/models"
	"panotour/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler stores images under /static/uploads
type UploadHandler struct {
	store *filestore.Store
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store *filestore.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Image stores a multipart "file" after sniffing it as png, jpeg, gif or webp
// POST /api/upload/image
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest("No file provided or invalid file")
	}

	saved, err := h.store.SaveMultipart(filestore.DirUploads, fileHeader, filestore.ImageTypes)
	if err != nil {
		return uploadError(c, err)
	}

	services.RecordUpload("image")
	logging.WithUser(middleware.Username(c)).Info("image uploaded", "file", saved.Name, "size", saved.Size)
	return c.Status(fiber.StatusCreated).JSON(uploadResponse(saved))
}

// Base64 decodes a data URI image and stores it
// POST /api/upload/base64
func (h *UploadHandler) Base64(c *fiber.Ctx) error {
	var req models.Base64UploadRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	saved, err := h.store.SaveDataURI(filestore.DirUploads, req.Image, filestore.ImageTypes)
	if err != nil {
		return uploadError(c, err)
	}

	services.RecordUpload("base64")
	logging.WithUser(middleware.Username(c)).Info("base64 image uploaded", "file", saved.Name, "size", saved.Size)
	return c.Status(fiber.StatusCreated).JSON(uploadResponse(saved))
}

func uploadResponse(saved *filestore.SavedFile) models.UploadResponse {
	return models.UploadResponse{
		URL:      saved.URL,
		Filename: saved.Name,
		MimeType: saved.MimeType,
		Size:     saved.Size,
	}
}
