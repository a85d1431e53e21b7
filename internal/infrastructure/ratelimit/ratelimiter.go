// Package ratelimit counts requests per key in fixed windows stored in Redis.
package ratelimit

import (
	"context"
	"time"
)

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetIn is the time left in the current window.
	ResetIn time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
	Reset(ctx context.Context, key string) error
}
