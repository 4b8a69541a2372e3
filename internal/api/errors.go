package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/service"
	"github.com/workshop-admin-api/internal/validation"
)

// respondError maps service errors onto status codes
func respondError(c *gin.Context, log zerolog.Logger, err error, notFoundMsg string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": verrs,
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// pathID reads a uuid path parameter; malformed ids answer 404 like unknown ones
func pathID(c *gin.Context, param, notFoundMsg string) (string, bool) {
	id := c.Param(param)
	if validation.ValidateID(param, id) != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return "", false
	}
	return id, true
}

// bindJSON decodes the request body, answering 400 on malformed JSON
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": key + " must be an integer"})
		return 0, false
	}
	return n, true
}
