package auth

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-identity request budget over a sliding 60s
// window. It is an in-memory structure; no Non-goal blocks this — a
// distributed backend would need a shared store, which §1 scopes out.
type RateLimiter struct {
	mu         sync.Mutex
	limit      int
	window     time.Duration
	identities map[string][]time.Time
}

func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		limit:      requestsPerMinute,
		window:     time.Minute,
		identities: make(map[string][]time.Time),
	}
}

// Allow reports whether identity may make another request now, recording it
// if so. Timestamps older than the window are dropped on every call, so the
// map never grows unbounded for an active identity.
func (r *RateLimiter) Allow(identity string) bool {
	now := time.Now()
	cutoff := now.Add(-r.window)

	r.mu.Lock()
	defer r.mu.Unlock()

	hits := r.identities[identity]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= r.limit {
		r.identities[identity] = kept
		return false
	}

	r.identities[identity] = append(kept, now)
	return true
}
