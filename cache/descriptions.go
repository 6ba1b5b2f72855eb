package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultTTL matches the poster description cache expiry used by the
// generator service.
const DefaultTTL = 3600 * time.Second

// Descriptions is a read-through cache for poster descriptions keyed by
// movie title and poster URL. Cache failures are logged and treated as
// misses so the describer never depends on redis being up.
type Descriptions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDescriptions(client *redis.Client, ttl time.Duration) *Descriptions {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Descriptions{client: client, ttl: ttl}
}

func buildKey(title, posterURL string) string {
	return fmt.Sprintf("poster_description:%s:%s", title, posterURL)
}

// Get returns the cached description and whether it was present.
func (c *Descriptions) Get(ctx context.Context, title, posterURL string) (string, bool) {
	key := buildKey(title, posterURL)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		log.Printf("description cache get %s: %v", key, err)
		return "", false
	}
	return val, true
}

// Set stores a description with the configured TTL.
func (c *Descriptions) Set(ctx context.Context, title, posterURL, description string) {
	key := buildKey(title, posterURL)
	if err := c.client.Set(ctx, key, description, c.ttl).Err(); err != nil {
		log.Printf("description cache set %s: %v", key, err)
	}
}

// Ping connectivity
func (c *Descriptions) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
