package services

import (
	"cmp"
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/you/storeadmin/domain"
)

const productsPath = "/products"

// ProductFilterKeys are the filter values forwarded to the remote product query
var ProductFilterKeys = []string{"title", "categoryId", "price_min", "price_max"}

// ProductListService is the product list view; it implements domain.ProductListService
type ProductListService struct {
	*ListView[domain.Product]
	unsubscribe func()
}

// NewProductListService creates the product list view
func NewProductListService(api domain.APIClient, cache domain.QueryCache, idleTTL time.Duration) *ProductListService {
	return &ProductListService{
		ListView: NewListView("products", productsPath, api, cache, productParams, compareProducts, idleTTL),
	}
}

// Listen invalidates every cached product page whenever a product changes
func (s *ProductListService) Listen(ctx context.Context, bus domain.EventBus) error {
	unsubscribe, err := bus.Subscribe(ctx, domain.ProductUpdatedEvent, func(ctx context.Context, event domain.Event) {
		if err := s.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Int("product_id", event.ProductID).Msg("Failed to invalidate product pages")
			return
		}
		log.Debug().Int("product_id", event.ProductID).Str("tab_id", event.TabID).Msg("Product pages invalidated")
	})
	if err != nil {
		return err
	}
	s.unsubscribe = unsubscribe
	return nil
}

// Close stops listening for product changes
func (s *ProductListService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func productParams(query domain.TableQuery, filter domain.Filter) url.Values {
	params := url.Values{
		"limit":  {strconv.Itoa(query.EffectiveLimit())},
		"offset": {strconv.Itoa(query.EffectiveOffset())},
	}
	for _, key := range ProductFilterKeys {
		if value := strings.TrimSpace(filter[key]); value != "" {
			params.Set(key, value)
		}
	}
	return params
}

func compareProducts(a, b domain.Product, key string) int {
	switch key {
	case "id":
		return cmp.Compare(a.ID, b.ID)
	case "title", "name":
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case "price":
		return cmp.Compare(a.Price, b.Price)
	case "category":
		return strings.Compare(a.Category.Name, b.Category.Name)
	case "creationAt":
		return a.CreationAt.Compare(b.CreationAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}

var _ domain.ProductListService = (*ProductListService)(nil)
