package models

// UploadResponse is returned by the upload endpoints
type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// Base64UploadRequest carries a data URI such as data:image/png;base64,...
type Base64UploadRequest struct {
	Image string `json:"image" validate:"required"`
}
