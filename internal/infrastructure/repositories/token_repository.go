package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/storeadmin/domain"
)

// Field names of the per-tab storage hash
const (
	AccessTokenField  = "access_token"
	RefreshTokenField = "refresh_token"
)

// TokenRepositoryImpl implements domain.TokenStore using a Redis hash per tab
type TokenRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewTokenRepository creates a new Redis token repository
func NewTokenRepository(client *redis.Client, ttl time.Duration) domain.TokenStore {
	return &TokenRepositoryImpl{
		client: client,
		prefix: "tab:",
		ttl:    ttl,
	}
}

// Load implements domain.TokenStore. Missing tabs yield empty tokens.
func (r *TokenRepositoryImpl) Load(ctx context.Context, tabID string) (domain.Tokens, error) {
	values, err := r.client.HGetAll(ctx, r.prefix+tabID).Result()
	if err != nil {
		return domain.Tokens{}, fmt.Errorf("failed to load tokens: %w", err)
	}

	return domain.Tokens{
		AccessToken:  values[AccessTokenField],
		RefreshToken: values[RefreshTokenField],
	}, nil
}

// Save implements domain.TokenStore
func (r *TokenRepositoryImpl) Save(ctx context.Context, tabID string, tokens domain.Tokens) error {
	key := r.prefix + tabID

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, AccessTokenField, tokens.AccessToken, RefreshTokenField, tokens.RefreshToken)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	return nil
}

// Clear implements domain.TokenStore
func (r *TokenRepositoryImpl) Clear(ctx context.Context, tabID string) error {
	return r.client.Del(ctx, r.prefix+tabID).Err()
}
