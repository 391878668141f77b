package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type counter struct {
	value int
}

func TestTabRegistry_GetCreatesOnce(t *testing.T) {
	created := 0
	registry := NewTabRegistry(time.Hour, func() *counter {
		created++
		return &counter{}
	})

	first := registry.Get("tab-1")
	first.value = 7
	second := registry.Get("tab-1")

	if created != 1 {
		t.Errorf("expected state created once, got %d", created)
	}
	if second.value != 7 {
		t.Errorf("expected the same state back, got %d", second.value)
	}
	if registry.Len() != 1 {
		t.Errorf("expected 1 tab, got %d", registry.Len())
	}
}

func TestTabRegistry_PeekDoesNotCreate(t *testing.T) {
	registry := NewTabRegistry(time.Hour, func() *counter { return &counter{} })

	if _, ok := registry.Peek("tab-1"); ok {
		t.Error("expected unknown tab")
	}
	if registry.Len() != 0 {
		t.Errorf("expected Peek to leave the registry empty, got %d", registry.Len())
	}

	registry.Get("tab-1")
	if _, ok := registry.Peek("tab-1"); !ok {
		t.Error("expected known tab")
	}
}

func TestTabRegistry_Sweep(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start

	tests := []struct {
		name     string
		idleTTL  time.Duration
		sweepAt  time.Duration
		expected int
	}{
		{"idle tabs are dropped", time.Minute, 2 * time.Minute, 1},
		{"recent tabs are kept", time.Minute, 30 * time.Second, 0},
		{"zero ttl disables sweeping", 0, 24 * time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewTabRegistry(tt.idleTTL, func() *counter { return &counter{} })
			registry.now = func() time.Time { return now }

			now = start
			registry.Get("idle")
			now = start.Add(tt.sweepAt)
			registry.Get("active")

			removed := registry.Sweep(now)
			if removed != tt.expected {
				t.Errorf("expected %d removed, got %d", tt.expected, removed)
			}
			if _, ok := registry.Peek("active"); !ok {
				t.Error("active tab must survive the sweep")
			}
		})
	}
}

func TestTabRegistry_EachAndRemove(t *testing.T) {
	registry := NewTabRegistry(time.Hour, func() *counter { return &counter{} })
	registry.Get("tab-1")
	registry.Get("tab-2")
	registry.Remove("tab-1")

	seen := map[string]bool{}
	registry.Each(func(tabID string, _ *counter) {
		seen[tabID] = true
	})

	if len(seen) != 1 || !seen["tab-2"] {
		t.Errorf("expected only tab-2, got %v", seen)
	}
}

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(time.Time) int {
	s.calls.Add(1)
	return 0
}

func TestRunSweeper(t *testing.T) {
	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunSweeper(ctx, 5*time.Millisecond, sweeper)
		close(done)
	}()

	time.Sleep(40 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSweeper did not stop on cancel")
	}
	if sweeper.calls.Load() == 0 {
		t.Error("expected at least one sweep")
	}
}

func TestSessionRegistry_TabsAreIsolated(t *testing.T) {
	sessions := NewSessionRegistry(time.Hour)

	first := sessions.Get("tab-1")
	if !first.MarkHydrated() {
		t.Error("first hydration must report true")
	}
	if first.MarkHydrated() {
		t.Error("second hydration must report false")
	}
	if !sessions.Get("tab-2").MarkHydrated() {
		t.Error("hydration is tracked per tab")
	}
}
