package blacklist

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kycflow/kycflow-backend/pkg/config"
)

const revokedKeyPrefix = "kyc:blacklist:jti:"

var _ Blacklist = (*RedisBlacklist)(nil)

// RedisBlacklist is a Redis-backed Blacklist so revocation state is
// shared across instances.
type RedisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist connects to the configured Redis server.
func NewRedisBlacklist(cfg config.RedisConfig) *RedisBlacklist {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisBlacklist{client: client}
}

// NewRedisBlacklistWithClient wraps an existing client (used in tests).
func NewRedisBlacklistWithClient(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

// Revoke stores the token ID with a TTL. Key existence is the marker.
func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token ID is on the list. A missing key
// means not revoked (or already expired).
func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := b.client.Get(ctx, revokedKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping checks connectivity to the Redis server.
func (b *RedisBlacklist) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (b *RedisBlacklist) Close() error {
	return b.client.Close()
}
