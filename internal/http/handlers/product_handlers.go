package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/storeadmin/domain"
)

// ProductHandlers serves the product list, product detail and its write actions
type ProductHandlers struct {
	*listHandlers[domain.Product]
	actions domain.ProductActions
	form    domain.ProductForm
}

// NewProductHandlers creates new product handlers
func NewProductHandlers(list domain.ProductListService, actions domain.ProductActions, form domain.ProductForm) *ProductHandlers {
	return &ProductHandlers{
		listHandlers: &listHandlers[domain.Product]{list: list},
		actions:      actions,
		form:         form,
	}
}

// Get returns product :id
func (h *ProductHandlers) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.actions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, product)
}

// Create validates the product form and creates the product with a unique slug
func (h *ProductHandlers) Create(c *gin.Context) {
	var values domain.ProductFormValues
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.form.Submit(c.Request.Context(), values, true, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, product)
}

// Update loads product :id and submits the edit form against it
func (h *ProductHandlers) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var values domain.ProductFormValues
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.actions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := h.form.Submit(c.Request.Context(), values, false, existing)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, product)
}

// Delete removes product :id
func (h *ProductHandlers) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.actions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Product deleted"})
}
