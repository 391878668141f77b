package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/observability"
)

// CompareFunc orders two rows by a sort key; unknown keys compare equal
type CompareFunc[T any] func(a, b T, key string) int

// ParamsFunc builds the remote query of a list from the table state
type ParamsFunc func(query domain.TableQuery, filter domain.Filter) url.Values

// listState is the table state of one resource in one tab
type listState[T domain.Identifiable] struct {
	mu         sync.Mutex
	query      domain.TableQuery
	filter     domain.Filter
	items      []T
	selection  []T
	generation uint64
	inflight   int
	err        string
}

// ListView keeps per-tab table state for a resource and fetches its pages through the query cache
type ListView[T domain.Identifiable] struct {
	resource string
	path     string
	api      domain.APIClient
	cache    domain.QueryCache
	params   ParamsFunc
	compare  CompareFunc[T]
	tabs     *TabRegistry[listState[T]]
}

// NewListView creates a list view over path (e.g. "/users")
func NewListView[T domain.Identifiable](
	resource, path string,
	api domain.APIClient,
	cache domain.QueryCache,
	params ParamsFunc,
	compare CompareFunc[T],
	idleTTL time.Duration,
) *ListView[T] {
	return &ListView[T]{
		resource: resource,
		path:     path,
		api:      api,
		cache:    cache,
		params:   params,
		compare:  compare,
		tabs: NewTabRegistry(idleTTL, func() *listState[T] {
			return &listState[T]{
				query:  domain.TableQuery{PageSize: domain.DefaultPageSize},
				filter: domain.Filter{},
			}
		}),
	}
}

// Key is the request shape of a table state, e.g. /users?limit=10
func (v *ListView[T]) Key(query domain.TableQuery, filter domain.Filter) string {
	params := v.params(query, filter)
	if len(params) == 0 {
		return v.path
	}
	return v.path + "?" + params.Encode()
}

// CacheKey scopes the request key to one tab, e.g. /users@tab-1?limit=10.
// Pages fetched with one tab's credentials are never served to another tab.
func (v *ListView[T]) CacheKey(tabID string, query domain.TableQuery, filter domain.Filter) string {
	return scopedKey(v.path, tabID, v.params(query, filter))
}

// scopedKey keeps the path first so resource-wide prefix invalidation reaches every tab
func scopedKey(path, tabID string, params url.Values) string {
	key := path + "@" + url.QueryEscape(tabID)
	if len(params) > 0 {
		key += "?" + params.Encode()
	}
	return key
}

// Query returns the tab's current table query
func (v *ListView[T]) Query(tabID string) domain.TableQuery {
	state := v.tabs.Get(tabID)
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.query
}

// SetQuery replaces the tab's table query. A changed query clears the selection
// and supersedes any fetch still in flight.
func (v *ListView[T]) SetQuery(tabID string, query domain.TableQuery) error {
	if err := query.Validate(); err != nil {
		return err
	}
	state := v.tabs.Get(tabID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.query.Equal(query) {
		return nil
	}
	state.query = query
	state.changed()
	return nil
}

// SetFilter replaces the tab's filter and rewinds to the first page
func (v *ListView[T]) SetFilter(tabID string, filter domain.Filter) error {
	state := v.tabs.Get(tabID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if filter == nil {
		filter = domain.Filter{}
	}
	if state.filter.Equal(filter) {
		return nil
	}
	state.filter = filter.Clone()
	state.query = state.query.WithPage(0)
	state.changed()
	return nil
}

// Load fetches the tab's current page through the cache
func (v *ListView[T]) Load(ctx context.Context, tabID string) (*domain.ListPage[T], error) {
	return v.load(ctx, tabID, false)
}

// Mutate refetches the tab's current page, bypassing the cache
func (v *ListView[T]) Mutate(ctx context.Context, tabID string) (*domain.ListPage[T], error) {
	return v.load(ctx, tabID, true)
}

func (v *ListView[T]) load(ctx context.Context, tabID string, force bool) (*domain.ListPage[T], error) {
	ctx = domain.ContextWithTab(ctx, tabID)
	logger := zerolog.Ctx(ctx)

	state := v.tabs.Get(tabID)
	state.mu.Lock()
	query, filter, generation := state.query, state.filter.Clone(), state.generation
	state.inflight++
	state.mu.Unlock()

	params := v.params(query, filter)
	key := v.CacheKey(tabID, query, filter)
	fetch := func(ctx context.Context) ([]byte, error) {
		return v.api.Raw(ctx, http.MethodGet, v.path, params, nil)
	}

	var body []byte
	var err error
	if force {
		body, err = v.cache.Mutate(ctx, key, fetch)
	} else {
		body, err = v.cache.Fetch(ctx, key, fetch)
	}

	var items []T
	if err == nil {
		if decodeErr := json.Unmarshal(body, &items); decodeErr != nil {
			err = fmt.Errorf("decode %s list: %w", v.resource, decodeErr)
		}
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	state.inflight--

	if state.generation != generation {
		observability.StaleResponsesTotal.WithLabelValues(v.resource).Inc()
		logger.Debug().Str("resource", v.resource).Str("key", key).Msg("Discarding superseded list response")
		return v.snapshot(state), nil
	}

	if err != nil {
		state.err = domain.Message(err)
		logger.Warn().Err(err).Str("resource", v.resource).Str("key", key).Msg("List fetch failed")
		return v.snapshot(state), err
	}

	if query.Sort != nil && query.Sort.Key != "" && v.compare != nil {
		sortRows(items, *query.Sort, v.compare)
	}
	state.items = items
	state.err = ""
	state.prune()
	return v.snapshot(state), nil
}

// Select adds or removes a row of the current page from the selection
func (v *ListView[T]) Select(tabID string, id int, checked bool) error {
	state := v.tabs.Get(tabID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if !checked {
		state.selection = slices.DeleteFunc(state.selection, func(row T) bool { return row.RowID() == id })
		return nil
	}

	idx := slices.IndexFunc(state.items, func(row T) bool { return row.RowID() == id })
	if idx < 0 {
		return domain.ErrRowNotInPage
	}
	if slices.ContainsFunc(state.selection, func(row T) bool { return row.RowID() == id }) {
		return nil
	}
	state.selection = append(state.selection, state.items[idx])
	return nil
}

// SelectAll selects every row of the current page, or clears the selection
func (v *ListView[T]) SelectAll(tabID string, checked bool) {
	state := v.tabs.Get(tabID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if !checked {
		state.selection = nil
		return
	}
	state.selection = append([]T(nil), state.items...)
}

// Snapshot returns the tab's state without fetching
func (v *ListView[T]) Snapshot(tabID string) *domain.ListPage[T] {
	state := v.tabs.Get(tabID)
	state.mu.Lock()
	defer state.mu.Unlock()
	return v.snapshot(state)
}

// Sweep implements Sweeper
func (v *ListView[T]) Sweep(now time.Time) int {
	return v.tabs.Sweep(now)
}

// InvalidateAll drops every cached page of the resource
func (v *ListView[T]) InvalidateAll(ctx context.Context) error {
	return v.cache.InvalidatePrefix(ctx, v.path)
}

func (v *ListView[T]) snapshot(state *listState[T]) *domain.ListPage[T] {
	limit := state.query.EffectiveLimit()
	return &domain.ListPage[T]{
		Items:       append([]T{}, state.items...),
		Total:       len(state.items),
		HasNextPage: len(state.items) > 0 && len(state.items) == limit,
		Query:       state.query,
		Filter:      state.filter.Clone(),
		Selection:   append([]T{}, state.selection...),
		Loading:     state.inflight > 0,
		Error:       state.err,
	}
}

// changed must be called with mu held
func (s *listState[T]) changed() {
	if len(s.selection) > 0 {
		s.selection = nil
	}
	s.generation++
}

// prune keeps only selected rows present in the latest page, refreshed with their latest values
func (s *listState[T]) prune() {
	if len(s.selection) == 0 {
		return
	}
	kept := s.selection[:0]
	for _, selected := range s.selection {
		idx := slices.IndexFunc(s.items, func(row T) bool { return row.RowID() == selected.RowID() })
		if idx >= 0 {
			kept = append(kept, s.items[idx])
		}
	}
	s.selection = kept
}

func sortRows[T any](items []T, sort domain.Sort, compare CompareFunc[T]) {
	slices.SortStableFunc(items, func(a, b T) int {
		c := compare(a, b, sort.Key)
		if sort.Order == domain.SortDesc {
			return -c
		}
		return c
	})
}
