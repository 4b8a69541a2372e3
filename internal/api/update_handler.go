package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/service"
)

const updateNotFound = "Update not found"

// UpdateHandler handles workshop update endpoints
type UpdateHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUpdateHandler creates a new UpdateHandler
func NewUpdateHandler(services *service.Services, log zerolog.Logger) *UpdateHandler {
	return &UpdateHandler{
		services: services,
		log:      log.With().Str("handler", "update").Logger(),
	}
}

// List handles GET /v1/workshops/:id/updates
func (h *UpdateHandler) List(c *gin.Context) {
	workshopID, ok := pathID(c, "id", workshopNotFound)
	if !ok {
		return
	}

	updates, err := h.services.Workshop.ListUpdates(c.Request.Context(), workshopID)
	if err != nil {
		respondError(c, h.log, err, workshopNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

// Create handles POST /v1/workshops/:id/updates
func (h *UpdateHandler) Create(c *gin.Context) {
	workshopID, ok := pathID(c, "id", workshopNotFound)
	if !ok {
		return
	}
	var in models.UpdateInput
	if !bindJSON(c, &in) {
		return
	}

	u, err := h.services.Workshop.CreateUpdate(c.Request.Context(), workshopID, &in)
	if err != nil {
		respondError(c, h.log, err, workshopNotFound)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Update handles PUT /v1/workshops/:id/updates/:update_id
func (h *UpdateHandler) Update(c *gin.Context) {
	workshopID, ok := pathID(c, "id", updateNotFound)
	if !ok {
		return
	}
	id, ok := pathID(c, "update_id", updateNotFound)
	if !ok {
		return
	}
	var in models.UpdateInput
	if !bindJSON(c, &in) {
		return
	}

	u, err := h.services.Workshop.UpdateUpdate(c.Request.Context(), workshopID, id, &in)
	if err != nil {
		respondError(c, h.log, err, updateNotFound)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /v1/workshops/:id/updates/:update_id
func (h *UpdateHandler) Delete(c *gin.Context) {
	workshopID, ok := pathID(c, "id", updateNotFound)
	if !ok {
		return
	}
	id, ok := pathID(c, "update_id", updateNotFound)
	if !ok {
		return
	}

	if err := h.services.Workshop.DeleteUpdate(c.Request.Context(), workshopID, id); err != nil {
		respondError(c, h.log, err, updateNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
