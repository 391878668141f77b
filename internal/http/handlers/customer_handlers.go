package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/services"
)

// CustomerHandlers serves the customer list and its write actions
type CustomerHandlers struct {
	*listHandlers[domain.Customer]
	actions domain.CustomerActions
	form    domain.CustomerForm
}

// NewCustomerHandlers creates new customer handlers
func NewCustomerHandlers(list domain.CustomerListService, actions domain.CustomerActions, form domain.CustomerForm) *CustomerHandlers {
	return &CustomerHandlers{
		listHandlers: &listHandlers[domain.Customer]{list: list},
		actions:      actions,
		form:         form,
	}
}

// Create validates the customer form and creates the customer
func (h *CustomerHandlers) Create(c *gin.Context) {
	var values domain.CustomerFormValues
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.form.Submit(c.Request.Context(), values, nil); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Customer created"})
}

// Update validates the customer form and updates customer :id
func (h *CustomerHandlers) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var values domain.CustomerFormValues
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.form.Submit(c.Request.Context(), values, func(ctx context.Context, values domain.CustomerFormValues) error {
		return h.actions.Update(ctx, id, services.CustomerPayloadFrom(values))
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Customer updated"})
}

// Delete removes customer :id
func (h *CustomerHandlers) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.actions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Customer deleted"})
}
