package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is the default TTL for cached aggregated responses.
// Short on purpose: live player counts go stale quickly.
const DefaultCacheTTL = 30 * time.Second

// CacheResponse stores a serialized aggregated response for a query
func (s *Store) CacheResponse(ctx context.Context, kind, query string, payload []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, CacheKey(kind, query), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache response: %w", err)
	}
	return nil
}

// GetCachedResponse retrieves a cached response. A miss is (nil, nil).
func (s *Store) GetCachedResponse(ctx context.Context, kind, query string) ([]byte, error) {
	data, err := s.client.Get(ctx, CacheKey(kind, query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached response: %w", err)
	}
	return data, nil
}

// FlushCache removes all cached responses
func (s *Store) FlushCache(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixCache+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	return nil
}
