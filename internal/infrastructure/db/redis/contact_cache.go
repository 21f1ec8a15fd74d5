package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rolodex/contacts-api/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// ContactCache is a read-through cache for single-contact lookups, keyed by
// contact id. Writers invalidate; readers fill.
type ContactCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContactCache wraps the given Redis client. A non-positive ttl falls
// back to the default.
func NewContactCache(client *redis.Client, ttl time.Duration) *ContactCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ContactCache{client: client, ttl: ttl}
}

// Get returns the cached contact, or (nil, nil) on a miss.
func (c *ContactCache) Get(ctx context.Context, id string) (*domain.Contact, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var contact domain.Contact
	if err := json.Unmarshal(raw, &contact); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		return nil, nil
	}
	return &contact, nil
}

// Set stores the contact for the configured TTL.
func (c *ContactCache) Set(ctx context.Context, contact *domain.Contact) error {
	raw, err := json.Marshal(contact)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(contact.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached entry after an update or delete.
func (c *ContactCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *ContactCache) key(id string) string {
	return "contact:" + id
}
