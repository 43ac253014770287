package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryCooldownGuard keeps cooldown state in process memory.
// Suitable for single-instance deployments and tests; the window does
// not survive restarts.
type InMemoryCooldownGuard struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

var _ CooldownGuard = (*InMemoryCooldownGuard)(nil)

// NewInMemoryCooldownGuard creates an empty guard
func NewInMemoryCooldownGuard() *InMemoryCooldownGuard {
	return &InMemoryCooldownGuard{
		expires: make(map[string]time.Time),
	}
}

// Acquire claims the window unless an unexpired claim exists
func (g *InMemoryCooldownGuard) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if expiry, ok := g.expires[key]; ok && now.Before(expiry) {
		return false, nil
	}

	// Expired entries for other keys are reclaimed lazily here rather
	// than by a background sweeper; the key space is tiny.
	for k, expiry := range g.expires {
		if now.After(expiry) {
			delete(g.expires, k)
		}
	}

	g.expires[key] = now.Add(ttl)
	return true, nil
}
