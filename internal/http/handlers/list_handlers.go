package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/http/middleware"
)

// listService is the table-state surface shared by the customer and product lists
type listService[T any] interface {
	Load(ctx context.Context, tabID string) (*domain.ListPage[T], error)
	Mutate(ctx context.Context, tabID string) (*domain.ListPage[T], error)
	SetQuery(tabID string, query domain.TableQuery) error
	SetFilter(tabID string, filter domain.Filter) error
	Select(tabID string, id int, checked bool) error
	SelectAll(tabID string, checked bool)
	Snapshot(tabID string) *domain.ListPage[T]
}

// SelectRequest toggles one row of the current page
type SelectRequest struct {
	ID      int  `json:"id" binding:"required"`
	Checked bool `json:"checked"`
}

// SelectAllRequest toggles every row of the current page
type SelectAllRequest struct {
	Checked bool `json:"checked"`
}

// listHandlers serves the table state of one list for the requesting tab
type listHandlers[T any] struct {
	list listService[T]
}

// List fetches the tab's current page
func (h *listHandlers[T]) List(c *gin.Context) {
	page, err := h.list.Load(c.Request.Context(), middleware.GetTabID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page)
}

// Refresh refetches the tab's current page, bypassing the cache
func (h *listHandlers[T]) Refresh(c *gin.Context) {
	page, err := h.list.Mutate(c.Request.Context(), middleware.GetTabID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page)
}

// SetQuery replaces pagination and sort, then fetches the page it points at
func (h *listHandlers[T]) SetQuery(c *gin.Context) {
	var query domain.TableQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tabID := middleware.GetTabID(c)
	if err := h.list.SetQuery(tabID, query); err != nil {
		respondError(c, err)
		return
	}
	h.List(c)
}

// SetFilter replaces the filter values, then fetches the first page
func (h *listHandlers[T]) SetFilter(c *gin.Context) {
	var filter domain.Filter
	if err := c.ShouldBindJSON(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tabID := middleware.GetTabID(c)
	if err := h.list.SetFilter(tabID, filter); err != nil {
		respondError(c, err)
		return
	}
	h.List(c)
}

// Select toggles a row of the current page
func (h *listHandlers[T]) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tabID := middleware.GetTabID(c)
	if err := h.list.Select(tabID, req.ID, req.Checked); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, h.list.Snapshot(tabID))
}

// SelectAll toggles the whole current page
func (h *listHandlers[T]) SelectAll(c *gin.Context) {
	var req SelectAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tabID := middleware.GetTabID(c)
	h.list.SelectAll(tabID, req.Checked)
	respond(c, http.StatusOK, h.list.Snapshot(tabID))
}
