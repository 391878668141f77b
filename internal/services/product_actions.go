package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/you/storeadmin/domain"
)

// ProductActionsImpl implements domain.ProductActions
type ProductActionsImpl struct {
	api       domain.APIClient
	cache     domain.QueryCache
	bus       domain.EventBus
	navigator domain.Navigator
}

// NewProductActions creates the product read and write actions
func NewProductActions(api domain.APIClient, cache domain.QueryCache, bus domain.EventBus, navigator domain.Navigator) *ProductActionsImpl {
	return &ProductActionsImpl{api: api, cache: cache, bus: bus, navigator: navigator}
}

// Get implements domain.ProductActions
func (a *ProductActionsImpl) Get(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := a.api.Do(ctx, http.MethodGet, productPath(id), nil, nil, &product); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create implements domain.ProductActions
func (a *ProductActionsImpl) Create(ctx context.Context, payload domain.ProductPayload) (*domain.Product, error) {
	var product domain.Product
	if err := a.api.Do(ctx, http.MethodPost, productsPath, nil, payload, &product); err != nil {
		return nil, actionError(err, saveProductFailedMessage, false)
	}
	a.saved(ctx, product.ID)
	return &product, nil
}

// Update implements domain.ProductActions
func (a *ProductActionsImpl) Update(ctx context.Context, id int, payload domain.ProductPayload) (*domain.Product, error) {
	var product domain.Product
	if err := a.api.Do(ctx, http.MethodPut, productPath(id), nil, payload, &product); err != nil {
		return nil, actionError(err, saveProductFailedMessage, false)
	}
	if product.ID == 0 {
		product.ID = id
	}
	a.saved(ctx, product.ID)
	return &product, nil
}

// Delete implements domain.ProductActions
func (a *ProductActionsImpl) Delete(ctx context.Context, id int) error {
	if err := a.api.Do(ctx, http.MethodDelete, productPath(id), nil, nil, nil); err != nil {
		return actionError(err, deleteProductFailedMessage, false)
	}
	if err := a.cache.InvalidatePrefix(ctx, productsPath); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to invalidate product pages")
	}
	a.navigator.Navigate(ctx, ProductListRoute)
	return nil
}

// saved broadcasts product-updated; list pages are invalidated by its subscribers
func (a *ProductActionsImpl) saved(ctx context.Context, id int) {
	event := domain.NewEvent(domain.ProductUpdatedEvent, domain.TabFromContext(ctx)).WithProduct(id)
	if err := a.bus.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int("product_id", id).Msg("Failed to publish product update")
		if err := a.cache.InvalidatePrefix(ctx, productsPath); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to invalidate product pages")
		}
	}
	a.navigator.Navigate(ctx, ProductListRoute)
}

func productPath(id int) string {
	return productsPath + "/" + strconv.Itoa(id)
}

var _ domain.ProductActions = (*ProductActionsImpl)(nil)
