package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/service"
)

// UploadHandler handles media uploads
type UploadHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(services *service.Services, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		services: services,
		log:      log.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /v1/uploads/:bucket with a multipart "file" field
func (h *UploadHandler) Upload(c *gin.Context) {
	bucket := c.Param("bucket")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return
	}
	defer file.Close()

	up, err := h.services.Upload.Upload(c.Request.Context(), bucket, header.Filename, header.Size, file)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, up)
	case errors.Is(err, service.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownBucket),
		errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("bucket", bucket).Msg("Upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store file"})
	}
}
