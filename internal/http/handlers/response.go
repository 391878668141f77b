package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/http/middleware"
)

// respond writes {"data": data} and, when a service navigated during the request,
// the route the browser should move to as "redirect"
func respond(c *gin.Context, status int, data any) {
	body := gin.H{"data": data}
	if target := middleware.NavigationTarget(c.Request.Context()); target != "" {
		body["redirect"] = target
	}
	c.JSON(status, body)
}

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": validationErr.Fields})
		return
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": domain.Message(err)})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidTableQuery), errors.Is(err, domain.ErrRowNotInPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrTokensMissing):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrTransport):
		c.JSON(http.StatusBadGateway, gin.H{"error": domain.Message(err)})
	default:
		var actionErr *domain.ActionError
		if errors.As(err, &actionErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": actionErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// idParam parses the :id path parameter
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
