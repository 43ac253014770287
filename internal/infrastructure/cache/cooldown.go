// Package cache provides shared throttling state for sync triggers.
package cache

import (
	"context"
	"time"
)

// CooldownGuard rate limits named operations across requests.
// Acquire returns true when the caller won the window, false while a
// previous acquisition is still cooling down.
type CooldownGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
