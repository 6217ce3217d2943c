// Package ratelimit implements a sliding-window submission limiter backed
// by a small key-value store.
package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const keyPrefix = "rate_limit:"

// Key returns the store key holding the record for a client identifier.
func Key(clientID string) string {
	return keyPrefix + clientID
}

// Store is the minimal key-value surface the limiter needs, so the backing
// store can be swapped (in-memory for tests, Redis in production) without
// touching the limiter logic. Get returns ("", nil) when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Record is the per-client rate-limit state: request timestamps in
// milliseconds since epoch, oldest first. After every check the record
// holds only timestamps within the current window, with the current
// attempt appended.
type Record struct {
	Requests []int64 `json:"requests"`
}

// Result is the outcome of a limiter check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Limiter allows at most limit requests per client within any trailing
// window.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// New creates a sliding-window limiter on top of a Store.
func New(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Check records the current attempt and reports whether it is within
// budget. Denied attempts still count: the appended timestamp is not
// rolled back. The read-modify-write is not atomic, so concurrent
// requests from the same client can undercount; that is accepted for an
// abuse deterrent, not a billing-grade counter.
func (l *Limiter) Check(ctx context.Context, clientID string) (Result, error) {
	key := Key(clientID)
	nowMs := l.now().UnixMilli()

	raw, err := l.store.Get(ctx, key)
	if err != nil {
		return Result{}, fmt.Errorf("read rate limit record: %w", err)
	}

	var rec Record
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			// A corrupt record is replaced, not allowed to lock the client out.
			rec = Record{}
		}
	}

	cutoff := nowMs - l.window.Milliseconds()
	valid := rec.Requests[:0]
	for _, ts := range rec.Requests {
		if ts > cutoff {
			valid = append(valid, ts)
		}
	}
	rec.Requests = append(valid, nowMs)

	data, err := json.Marshal(rec)
	if err != nil {
		return Result{}, fmt.Errorf("marshal rate limit record: %w", err)
	}

	// TTL equals the window so abandoned keys self-clean.
	if err := l.store.Put(ctx, key, string(data), l.window); err != nil {
		return Result{}, fmt.Errorf("write rate limit record: %w", err)
	}

	count := len(rec.Requests)
	remaining := l.limit - count + 1
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= l.limit,
		Remaining: remaining,
		ResetIn:   l.window,
	}, nil
}
