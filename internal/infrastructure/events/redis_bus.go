package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/observability"
)

// DefaultChannelPrefix namespaces event channels, e.g. storeadmin:events:product-updated
const DefaultChannelPrefix = "storeadmin:events:"

// ErrBusClosed is returned after Close
var ErrBusClosed = errors.New("event bus closed")

// RedisBus broadcasts events over Redis pub/sub so every replica sees them
type RedisBus struct {
	client *redis.Client
	prefix string

	mu      sync.Mutex
	pubsubs map[*redis.PubSub]struct{}
	wg      sync.WaitGroup
	closed  bool
}

// NewRedisBus creates a Redis pub/sub event bus
func NewRedisBus(client *redis.Client, prefix string) *RedisBus {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisBus{
		client:  client,
		prefix:  prefix,
		pubsubs: make(map[*redis.PubSub]struct{}),
	}
}

func (b *RedisBus) channel(eventType domain.EventType) string {
	return b.prefix + string(eventType)
}

func (b *RedisBus) Publish(ctx context.Context, event domain.Event) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrBusClosed
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Type, err)
	}
	if err := b.client.Publish(ctx, b.channel(event.Type), payload).Err(); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}
	observability.EventsPublishedTotal.WithLabelValues(string(event.Type)).Inc()
	return nil
}

// Subscribe starts a receive loop for eventType; it returns once the subscription is confirmed
func (b *RedisBus) Subscribe(ctx context.Context, eventType domain.EventType, handler domain.EventHandler) (func(), error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBusClosed
	}
	b.mu.Unlock()

	pubsub := b.client.Subscribe(ctx, b.channel(eventType))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", eventType, err)
	}

	b.mu.Lock()
	b.pubsubs[pubsub] = struct{}{}
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range pubsub.Channel() {
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Str("channel", msg.Channel).Msg("Dropping malformed event")
				continue
			}
			handler(context.Background(), event)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.pubsubs, pubsub)
			b.mu.Unlock()
			_ = pubsub.Close()
		})
	}, nil
}

// Close unsubscribes everything and waits for receive loops to drain
func (b *RedisBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	pubsubs := b.pubsubs
	b.pubsubs = make(map[*redis.PubSub]struct{})
	b.mu.Unlock()

	var errs []error
	for pubsub := range pubsubs {
		if err := pubsub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	b.wg.Wait()
	return errors.Join(errs...)
}

var _ domain.EventBus = (*RedisBus)(nil)
