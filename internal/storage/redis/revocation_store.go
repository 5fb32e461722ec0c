package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"fileupload/internal/config"
	"fileupload/internal/port"
)

const revokedKeyPrefix = "session:revoked:"

type revocationStore struct {
	rdb goredis.UniversalClient
}

// NewClient opens a redis client for cfg and verifies it with PING.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// NewRevocationStore creates a SessionRevocationStore keyed by token ID.
func NewRevocationStore(rdb goredis.UniversalClient) port.SessionRevocationStore {
	return &revocationStore{rdb: rdb}
}

func key(tokenID string) string { return revokedKeyPrefix + tokenID }

func (s *revocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Revoke keeps the marker until the token would have expired anyway.
func (s *revocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.rdb.Set(ctx, key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
