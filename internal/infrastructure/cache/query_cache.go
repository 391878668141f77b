package cache

import (
	"context"
	"encoding/binary"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/observability"
)

// stamped entries carry the fetch time ahead of the body
const stampSize = 8

// QueryCacheImpl implements domain.QueryCache on top of a CacheStore.
// Entries younger than the dedupe interval are served as is; older entries are
// revalidated against the remote API. Concurrent fetches of one key share a single call.
type QueryCacheImpl struct {
	store  domain.CacheStore
	ttl    time.Duration
	dedupe time.Duration
	group  singleflight.Group
	now    func() time.Time

	// epoch advances on every invalidation; a fetch that started in an older
	// epoch returns its body but never writes it to the store
	mu       sync.Mutex
	epoch    uint64
	inflight map[string]int
}

// NewQueryCache creates a query cache. ttl bounds how long entries live in the store,
// dedupe is the window in which a cached entry is considered fresh.
func NewQueryCache(store domain.CacheStore, ttl, dedupe time.Duration) *QueryCacheImpl {
	return &QueryCacheImpl{
		store:  store,
		ttl:    ttl,
		dedupe:   dedupe,
		now:      time.Now,
		inflight: make(map[string]int),
	}
}

// Fetch returns the cached body for key, revalidating it when stale
func (c *QueryCacheImpl) Fetch(ctx context.Context, key string, fetch domain.Fetcher) ([]byte, error) {
	logger := zerolog.Ctx(ctx)

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, fetching from remote")
	}
	if ok {
		fetchedAt, body, valid := unstamp(raw)
		if valid && c.now().Sub(fetchedAt) < c.dedupe {
			observability.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return body, nil
		}
	}

	observability.CacheLookupsTotal.WithLabelValues("miss").Inc()
	return c.load(ctx, key, fetch)
}

// Mutate bypasses freshness and reloads key from the remote API
func (c *QueryCacheImpl) Mutate(ctx context.Context, key string, fetch domain.Fetcher) ([]byte, error) {
	c.forget(func(k string) bool { return k == key })
	if err := c.store.Delete(ctx, key); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache delete failed")
	}
	return c.load(ctx, key, fetch)
}

// Invalidate drops keys so the next Fetch goes to the remote API
func (c *QueryCacheImpl) Invalidate(ctx context.Context, keys ...string) error {
	c.forget(func(k string) bool { return slices.Contains(keys, k) })
	if err := c.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("invalidate: %w", err)
	}
	return nil
}

// InvalidatePrefix drops every key starting with prefix, e.g. "/products"
func (c *QueryCacheImpl) InvalidatePrefix(ctx context.Context, prefix string) error {
	c.forget(func(k string) bool { return strings.HasPrefix(k, prefix) })
	if err := c.store.DeletePrefix(ctx, prefix); err != nil {
		return fmt.Errorf("invalidate prefix: %w", err)
	}
	return nil
}

// load runs one shared fetch per key, detached from caller cancellation.
// A cancelled caller stops waiting; coalesced callers still get the result.
func (c *QueryCacheImpl) load(ctx context.Context, key string, fetch domain.Fetcher) ([]byte, error) {
	fetchCtx := context.WithoutCancel(ctx)
	results := c.group.DoChan(key, func() (any, error) {
		epoch := c.begin(key)
		body, err := fetch(fetchCtx)
		current := c.finish(key, epoch)
		if err != nil {
			return nil, err
		}
		if !current {
			zerolog.Ctx(fetchCtx).Debug().Str("key", key).Msg("Cache invalidated during fetch, not storing")
			return body, nil
		}
		if err := c.store.Set(fetchCtx, key, stamp(c.now(), body), c.ttl); err != nil {
			zerolog.Ctx(fetchCtx).Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.Shared {
			observability.CacheLookupsTotal.WithLabelValues("shared").Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *QueryCacheImpl) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[key]++
	return c.epoch
}

// finish reports whether no invalidation happened since begin
func (c *QueryCacheImpl) finish(key string, epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key]--; c.inflight[key] <= 0 {
		delete(c.inflight, key)
	}
	return c.epoch == epoch
}

// forget detaches matching in-flight keys so the next caller starts a fresh fetch
func (c *QueryCacheImpl) forget(match func(key string) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	for key := range c.inflight {
		if match(key) {
			c.group.Forget(key)
		}
	}
}

func stamp(at time.Time, body []byte) []byte {
	out := make([]byte, stampSize+len(body))
	binary.BigEndian.PutUint64(out, uint64(at.UnixNano()))
	copy(out[stampSize:], body)
	return out
}

func unstamp(raw []byte) (time.Time, []byte, bool) {
	if len(raw) < stampSize {
		return time.Time{}, nil, false
	}
	nanos := int64(binary.BigEndian.Uint64(raw[:stampSize]))
	return time.Unix(0, nanos), raw[stampSize:], true
}

var _ domain.QueryCache = (*QueryCacheImpl)(nil)
