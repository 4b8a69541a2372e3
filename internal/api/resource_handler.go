package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/service"
)

const resourceNotFound = "Resource not found"

// ResourceHandler handles workshop resource endpoints
type ResourceHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(services *service.Services, log zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{
		services: services,
		log:      log.With().Str("handler", "resource").Logger(),
	}
}

// List handles GET /v1/workshops/:id/resources
func (h *ResourceHandler) List(c *gin.Context) {
	workshopID, ok := pathID(c, "id", workshopNotFound)
	if !ok {
		return
	}

	resources, err := h.services.Workshop.ListResources(c.Request.Context(), workshopID)
	if err != nil {
		respondError(c, h.log, err, workshopNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// Create handles POST /v1/workshops/:id/resources
func (h *ResourceHandler) Create(c *gin.Context) {
	workshopID, ok := pathID(c, "id", workshopNotFound)
	if !ok {
		return
	}
	var in models.ResourceInput
	if !bindJSON(c, &in) {
		return
	}

	r, err := h.services.Workshop.CreateResource(c.Request.Context(), workshopID, &in)
	if err != nil {
		respondError(c, h.log, err, workshopNotFound)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Update handles PUT /v1/workshops/:id/resources/:resource_id
func (h *ResourceHandler) Update(c *gin.Context) {
	workshopID, ok := pathID(c, "id", resourceNotFound)
	if !ok {
		return
	}
	id, ok := pathID(c, "resource_id", resourceNotFound)
	if !ok {
		return
	}
	var in models.ResourceInput
	if !bindJSON(c, &in) {
		return
	}

	r, err := h.services.Workshop.UpdateResource(c.Request.Context(), workshopID, id, &in)
	if err != nil {
		respondError(c, h.log, err, resourceNotFound)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /v1/workshops/:id/resources/:resource_id
func (h *ResourceHandler) Delete(c *gin.Context) {
	workshopID, ok := pathID(c, "id", resourceNotFound)
	if !ok {
		return
	}
	id, ok := pathID(c, "resource_id", resourceNotFound)
	if !ok {
		return
	}

	if err := h.services.Workshop.DeleteResource(c.Request.Context(), workshopID, id); err != nil {
		respondError(c, h.log, err, resourceNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
