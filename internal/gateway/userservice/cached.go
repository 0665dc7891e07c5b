package userservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/oggyb/muzz-matching/internal/cache"
	"github.com/oggyb/muzz-matching/internal/matching"
)

// Cached decorates a ProfileGateway with a Redis read-through cache.
// Redis failures are logged and the call falls through to the upstream;
// upstream errors are never cached.
type Cached struct {
	next  matching.ProfileGateway
	redis *cache.RedisCache
	ttl   time.Duration
	log   *slog.Logger
}

func NewCached(next matching.ProfileGateway, redis *cache.RedisCache, ttl time.Duration, log *slog.Logger) *Cached {
	return &Cached{next: next, redis: redis, ttl: ttl, log: log}
}

func (c *Cached) GetProfile(ctx context.Context, userID uint64) (matching.Profile, error) {
	key := c.redis.KeyForProfile(userID)

	var p matching.Profile
	if c.lookup(ctx, key, &p) {
		return p, nil
	}

	p, err := c.next.GetProfile(ctx, userID)
	if err != nil {
		return matching.Profile{}, err
	}
	c.store(ctx, key, p)
	return p, nil
}

func (c *Cached) ListProfiles(ctx context.Context) ([]matching.Profile, error) {
	key := c.redis.KeyForProfileList()

	var list []matching.Profile
	if c.lookup(ctx, key, &list) {
		return list, nil
	}

	list, err := c.next.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, list)
	return list, nil
}

func (c *Cached) GetInterests(ctx context.Context, userID uint64) ([]string, error) {
	key := c.redis.KeyForInterests(userID)

	var interests []string
	if c.lookup(ctx, key, &interests) {
		return interests, nil
	}

	interests, err := c.next.GetInterests(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, interests)
	return interests, nil
}

func (c *Cached) lookup(ctx context.Context, key string, out any) bool {
	hit, err := c.redis.GetJSON(ctx, key, out)
	if err != nil {
		c.log.Warn("profile cache read failed", "key", key, "err", err)
		return false
	}
	return hit
}

func (c *Cached) store(ctx context.Context, key string, v any) {
	if err := c.redis.SetJSON(ctx, key, v, c.ttl); err != nil {
		c.log.Warn("profile cache write failed", "key", key, "err", err)
	}
}
