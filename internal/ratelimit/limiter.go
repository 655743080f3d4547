// Package ratelimit throttles outbound model calls and holds a bounded
// in-memory cache of full responses keyed by exact prompt text.
//
// This is a heuristic throttle, not a hard quota guarantee: CanCall
// answers from a rolling 60-second window of logged call times, and the
// caller is expected to wait a short fixed backoff and retry once when
// the window is full.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultCallsPerMinute is the rolling-window call budget.
	DefaultCallsPerMinute = 50

	// DefaultCacheSize bounds the response cache.
	DefaultCacheSize = 1000

	// Backoff is the fixed wait applied by callers when the window is full.
	Backoff = 2 * time.Second

	window = time.Minute
)

// Limiter tracks recent call timestamps and caches responses.
// Both the call log and the cache are process-local and reset on restart.
type Limiter struct {
	mu             sync.Mutex
	callsPerMinute int
	cacheSize      int
	calls          []time.Time
	cache          map[string]string
	order          []string // cache keys in insertion order
	now            func() time.Time
}

// New creates a Limiter with the given per-minute call budget.
// budget <= 0 selects DefaultCallsPerMinute.
func New(budget int) *Limiter {
	if budget <= 0 {
		budget = DefaultCallsPerMinute
	}
	return &Limiter{
		callsPerMinute: budget,
		cacheSize:      DefaultCacheSize,
		cache:          make(map[string]string),
		now:            time.Now,
	}
}

// SetClock replaces the time source. Test hook.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// SetCacheSize overrides the cache capacity. Test hook.
func (l *Limiter) SetCacheSize(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cacheSize = n
}

// CanCall reports whether a new external call fits the rolling window.
// Timestamps older than one minute are discarded as a side effect.
func (l *Limiter) CanCall() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune()
	return len(l.calls) < l.callsPerMinute
}

// LogCall records the current time as a call. The caller must invoke this
// exactly once per actual external call, immediately after making it.
func (l *Limiter) LogCall() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, l.now())
}

// prune drops timestamps older than the window. Caller holds the lock.
func (l *Limiter) prune() {
	cutoff := l.now().Add(-window)
	kept := l.calls[:0]
	for _, t := range l.calls {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.calls = kept
}

// Cached returns the cached response for key, if any.
func (l *Limiter) Cached(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	text, ok := l.cache[key]
	return text, ok
}

// Cache stores a response under key. When the cache grows past capacity,
// exactly one entry is evicted: the oldest-inserted one. Insertion-order
// eviction, not LRU — a re-stored key keeps its original position.
func (l *Limiter) Cache(key, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.cache[key]; !exists {
		l.order = append(l.order, key)
	}
	l.cache[key] = text

	if len(l.cache) > l.cacheSize {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.cache, oldest)
	}
}

// CacheLen returns the number of cached responses.
func (l *Limiter) CacheLen() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}
