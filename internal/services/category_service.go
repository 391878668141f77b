package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/you/storeadmin/domain"
)

const categoriesPath = "/categories"

// CategoryServiceImpl implements domain.CategoryService
type CategoryServiceImpl struct {
	api   domain.APIClient
	cache domain.QueryCache
}

// NewCategoryService creates a new category service
func NewCategoryService(api domain.APIClient, cache domain.QueryCache) *CategoryServiceImpl {
	return &CategoryServiceImpl{api: api, cache: cache}
}

// List implements domain.CategoryService
func (s *CategoryServiceImpl) List(ctx context.Context, limit int) ([]domain.Category, error) {
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	key := scopedKey(categoriesPath, domain.TabFromContext(ctx), params)

	body, err := s.cache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		return s.api.Raw(ctx, http.MethodGet, categoriesPath, params, nil)
	})
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

var _ domain.CategoryService = (*CategoryServiceImpl)(nil)
