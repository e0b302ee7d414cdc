package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var ErrServerRateLimited = errors.New("server rate limit exceeded")

// UserLimiter is the in-process counterpart of the Redis order limiter:
// one token bucket per user refilled at limit tokens per window.
//
// A bucket untouched for a whole window is full again, so it is dropped on
// the next sweep; a new bucket for that user starts in the same state.
type UserLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*userBucket
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type userBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewUserLimiter(limit int64, window time.Duration) *UserLimiter {
	return &UserLimiter{
		limiters:  make(map[string]*userBucket),
		limit:     rate.Limit(float64(limit) / window.Seconds()),
		burst:     int(limit),
		idleAfter: window,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *UserLimiter) Allow(_ context.Context, userID string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleAfter {
		l.sweep(now)
	}

	bucket, found := l.limiters[userID]
	if !found {
		bucket = &userBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[userID] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.AllowN(now, 1), nil
}

func (l *UserLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.limiters)
}

func (l *UserLimiter) sweep(now time.Time) {
	for userID, bucket := range l.limiters {
		if now.Sub(bucket.lastSeen) >= l.idleAfter {
			delete(l.limiters, userID)
		}
	}
	l.lastSweep = now
}

// ServerLimiter adapts a single token bucket to the go-grpc-middleware
// ratelimit.Limiter interface.
type ServerLimiter struct {
	limiter *rate.Limiter
}

func NewServerLimiter(rps float64, burst int) *ServerLimiter {
	return &ServerLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (l *ServerLimiter) Limit(_ context.Context) error {
	if !l.limiter.Allow() {
		return ErrServerRateLimited
	}

	return nil
}
