package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oggyb/muzz-matching/internal/config"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// SetJSON stores v as JSON under key.
func (c *RedisCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return c.Client.Set(ctx, key, b, ttl).Err()
}

// GetJSON decodes the JSON value under key into v.
// Returns false on cache miss.
func (c *RedisCache) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	b, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil // cache miss
	} else if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

// KeyForProfile generates Redis key for a user's profile.
func (c *RedisCache) KeyForProfile(userID uint64) string {
	return fmt.Sprintf("profiles:user:%d", userID)
}

// KeyForInterests generates Redis key for a user's interest list.
func (c *RedisCache) KeyForInterests(userID uint64) string {
	return fmt.Sprintf("profiles:interests:%d", userID)
}

// KeyForProfileList is the key of the full candidate pool snapshot.
func (c *RedisCache) KeyForProfileList() string {
	return "profiles:all"
}
