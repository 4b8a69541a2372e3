package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/service"
)

const workshopNotFound = "Workshop not found"

// WorkshopHandler handles workshop endpoints
type WorkshopHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewWorkshopHandler creates a new WorkshopHandler
func NewWorkshopHandler(services *service.Services, log zerolog.Logger) *WorkshopHandler {
	return &WorkshopHandler{
		services: services,
		log:      log.With().Str("handler", "workshop").Logger(),
	}
}

// List handles GET /v1/workshops?limit=&offset=
// With ?shopify_product_id= it looks up the workshop imported from that product instead.
func (h *WorkshopHandler) List(c *gin.Context) {
	if raw := c.Query("shopify_product_id"); raw != "" {
		h.findByProduct(c, raw)
		return
	}

	limit, ok := queryInt(c, "limit", service.DefaultPageLimit)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}

	list, err := h.services.Workshop.ListWorkshops(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.log, err, workshopNotFound)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *WorkshopHandler) findByProduct(c *gin.Context, raw string) {
	productID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || productID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shopify_product_id must be a positive integer"})
		return
	}

	list, err := h.services.Workshop.FindByShopifyProductID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, h.log, err, workshopNotFound)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get handles GET /v1/workshops/:id
func (h *WorkshopHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", workshopNotFound)
	if !ok {
		return
	}

	w, err := h.services.Workshop.GetWorkshop(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, workshopNotFound)
		return
	}
	c.JSON(http.StatusOK, w)
}

// Create handles POST /v1/workshops
func (h *WorkshopHandler) Create(c *gin.Context) {
	var in models.WorkshopInput
	if !bindJSON(c, &in) {
		return
	}

	w, err := h.services.Workshop.CreateWorkshop(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err, workshopNotFound)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// Update handles PUT /v1/workshops/:id
func (h *WorkshopHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", workshopNotFound)
	if !ok {
		return
	}
	var in models.WorkshopInput
	if !bindJSON(c, &in) {
		return
	}

	w, err := h.services.Workshop.UpdateWorkshop(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err, workshopNotFound)
		return
	}
	c.JSON(http.StatusOK, w)
}

// Delete handles DELETE /v1/workshops/:id
func (h *WorkshopHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", workshopNotFound)
	if !ok {
		return
	}

	if err := h.services.Workshop.DeleteWorkshop(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, workshopNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
