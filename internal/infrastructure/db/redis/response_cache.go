package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/apiintegration/taskhub/internal/core/ports"
)

// ResponseCache keeps relayed upstream responses in Redis as JSON documents.
// Key format: cache:<key>
type ResponseCache struct {
	client *redis.Client
}

// NewResponseCache creates a ResponseCache wrapping the given Redis client.
func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{client: client}
}

// Get reports a miss with ok=false and a nil error.
func (c *ResponseCache) Get(ctx context.Context, key string) (*ports.UpstreamResponse, bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var resp ports.UpstreamResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return &resp, true, nil
}

// Set stores resp under key for ttl.
func (c *ResponseCache) Set(ctx context.Context, key string, resp *ports.UpstreamResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(key), raw, ttl).Err()
}

func (c *ResponseCache) key(k string) string {
	return "cache:" + k
}
