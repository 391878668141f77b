package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/storeadmin/domain"
)

// CategoryHandlers serves the category options of the product form
type CategoryHandlers struct {
	categories   domain.CategoryService
	defaultLimit int
}

// NewCategoryHandlers creates new category handlers
func NewCategoryHandlers(categories domain.CategoryService, defaultLimit int) *CategoryHandlers {
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultPageSize
	}
	return &CategoryHandlers{categories: categories, defaultLimit: defaultLimit}
}

// List returns up to ?limit= categories
func (h *CategoryHandlers) List(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	categories, err := h.categories.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, categories)
}
