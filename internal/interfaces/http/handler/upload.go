package handler

import (
	"github.com/gin-gonic/gin"

	mediaapp "github.com/shopadmin/backend/internal/application/media"
)

// UploadHandler handles image upload endpoints
type UploadHandler struct {
	BaseHandler
	uploadService *mediaapp.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *mediaapp.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// Upload stores product images from a multipart form and returns their public URLs.
// The form field is "images".
// POST /api/v1/uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Invalid multipart form")
		return
	}

	files := form.File["images"]

	result, err := h.uploadService.Upload(c.Request.Context(), files)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
