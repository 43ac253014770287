package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCooldownGuard shares cooldown state through Redis so the window
// holds across multiple server instances.
type RedisCooldownGuard struct {
	client    *redis.Client
	keyPrefix string
}

var _ CooldownGuard = (*RedisCooldownGuard)(nil)

// NewRedisCooldownGuard creates a guard on an existing Redis client.
// The prefix always ends with a separator so resource keys stay distinct
// in the keyspace.
func NewRedisCooldownGuard(client *redis.Client, keyPrefix string) *RedisCooldownGuard {
	if keyPrefix == "" {
		keyPrefix = "sync:cooldown"
	}
	if !strings.HasSuffix(keyPrefix, ":") {
		keyPrefix += ":"
	}
	return &RedisCooldownGuard{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Acquire atomically claims the window via SETNX with a TTL
func (g *RedisCooldownGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := g.client.SetNX(ctx, g.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire cooldown: %w", err)
	}
	return acquired, nil
}
