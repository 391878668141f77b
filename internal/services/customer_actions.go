package services

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/you/storeadmin/domain"
)

// CustomerActionsImpl implements domain.CustomerActions.
// The acting tab travels in ctx (domain.ContextWithTab).
type CustomerActionsImpl struct {
	api       domain.APIClient
	cache     domain.QueryCache
	navigator domain.Navigator
}

// NewCustomerActions creates the customer write actions
func NewCustomerActions(api domain.APIClient, cache domain.QueryCache, navigator domain.Navigator) *CustomerActionsImpl {
	return &CustomerActionsImpl{api: api, cache: cache, navigator: navigator}
}

// Create implements domain.CustomerActions
func (a *CustomerActionsImpl) Create(ctx context.Context, payload domain.CustomerPayload) error {
	if err := a.api.Do(ctx, http.MethodPost, customersPath, nil, payload, nil); err != nil {
		return actionError(err, createCustomerFailedMessage, true)
	}
	a.written(ctx)
	return nil
}

// Update implements domain.CustomerActions
func (a *CustomerActionsImpl) Update(ctx context.Context, id int, payload domain.CustomerPayload) error {
	if err := a.api.Do(ctx, http.MethodPut, customerPath(id), nil, payload, nil); err != nil {
		return actionError(err, updateCustomerFailedMessage, true)
	}
	a.written(ctx)
	return nil
}

// Delete implements domain.CustomerActions
func (a *CustomerActionsImpl) Delete(ctx context.Context, id int) error {
	if err := a.api.Do(ctx, http.MethodDelete, customerPath(id), nil, nil, nil); err != nil {
		return actionError(err, deleteCustomerFailedMessage, false)
	}
	a.written(ctx)
	return nil
}

func (a *CustomerActionsImpl) written(ctx context.Context) {
	if err := a.cache.InvalidatePrefix(ctx, customersPath); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to invalidate customer pages")
	}
	a.navigator.Navigate(ctx, CustomerListRoute)
}

func customerPath(id int) string {
	return customersPath + "/" + strconv.Itoa(id)
}

var _ domain.CustomerActions = (*CustomerActionsImpl)(nil)
