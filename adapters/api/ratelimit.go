package api

import (
	"context"
	"sync"
	"time"
)

// RateLimiter implements token bucket rate limiting, refilled every minute
type RateLimiter struct {
	rate   int // requests per minute
	tokens chan struct{}
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	rl := &RateLimiter{
		rate:   requestsPerMinute,
		tokens: make(chan struct{}, requestsPerMinute),
		ticker: time.NewTicker(time.Minute),
		done:   make(chan struct{}),
	}
	rl.refill()

	go func() {
		for {
			select {
			case <-rl.ticker.C:
				rl.refill()
			case <-rl.done:
				return
			}
		}
	}()
	return rl
}

// Wait blocks until a token is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	select {
	case <-rl.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop halts the refill goroutine. Waiters still drain remaining tokens.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() {
		rl.ticker.Stop()
		close(rl.done)
	})
}

func (rl *RateLimiter) refill() {
	for i := 0; i < rl.rate; i++ {
		select {
		case rl.tokens <- struct{}{}:
		default:
			return
		}
	}
}
