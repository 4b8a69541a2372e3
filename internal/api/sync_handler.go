package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/auth"
	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/service"
)

// SyncHandler handles the catalog import endpoint
type SyncHandler struct {
	services     *service.Services
	collectionID string
	log          zerolog.Logger
}

// NewSyncHandler creates a new SyncHandler importing collectionID
func NewSyncHandler(services *service.Services, collectionID string, log zerolog.Logger) *SyncHandler {
	return &SyncHandler{
		services:     services,
		collectionID: collectionID,
		log:          log.With().Str("handler", "sync").Logger(),
	}
}

// SyncShopify handles POST /v1/sync/shopify
// Runs the import synchronously and returns its summary
func (h *SyncHandler) SyncShopify(c *gin.Context) {
	h.log.Info().
		Str("collection_id", h.collectionID).
		Bool("has_token", auth.CurrentToken(c) != "").
		Msg("Sync requested")

	result, err := h.services.Sync.Run(c.Request.Context(), h.collectionID)
	if err != nil {
		h.log.Error().Err(err).Msg("Sync error")
		empty := models.NewSyncResult()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"created": empty.Created,
			"updated": empty.Updated,
			"errors":  empty.Errors,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
