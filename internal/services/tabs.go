package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper drops per-tab state that has been idle for too long
type Sweeper interface {
	Sweep(now time.Time) int
}

type tabEntry[S any] struct {
	state    *S
	lastSeen time.Time
}

// TabRegistry holds one state value per browser tab
type TabRegistry[S any] struct {
	mu       sync.Mutex
	entries  map[string]*tabEntry[S]
	newState func() *S
	idleTTL  time.Duration
	now      func() time.Time
}

// NewTabRegistry creates a registry; idleTTL <= 0 disables sweeping
func NewTabRegistry[S any](idleTTL time.Duration, newState func() *S) *TabRegistry[S] {
	return &TabRegistry[S]{
		entries:  make(map[string]*tabEntry[S]),
		newState: newState,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Get returns the tab's state, creating it on first use
func (r *TabRegistry[S]) Get(tabID string) *S {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[tabID]
	if !ok {
		entry = &tabEntry[S]{state: r.newState()}
		r.entries[tabID] = entry
	}
	entry.lastSeen = r.now()
	return entry.state
}

// Peek returns the tab's state without creating or touching it
func (r *TabRegistry[S]) Peek(tabID string) (*S, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[tabID]
	if !ok {
		return nil, false
	}
	return entry.state, true
}

// Each calls fn for every live tab; fn must not call back into the registry
func (r *TabRegistry[S]) Each(fn func(tabID string, state *S)) {
	r.mu.Lock()
	states := make(map[string]*S, len(r.entries))
	for id, entry := range r.entries {
		states[id] = entry.state
	}
	r.mu.Unlock()

	for id, state := range states {
		fn(id, state)
	}
}

// Remove forgets a tab
func (r *TabRegistry[S]) Remove(tabID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, tabID)
}

// Len is the number of live tabs
func (r *TabRegistry[S]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep implements Sweeper
func (r *TabRegistry[S]) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, entry := range r.entries {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done
func RunSweeper(ctx context.Context, interval time.Duration, sweepers ...Sweeper) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed := 0
			for _, s := range sweepers {
				removed += s.Sweep(now)
			}
			if removed > 0 {
				log.Debug().Int("removed", removed).Msg("Swept idle tab state")
			}
		}
	}
}
