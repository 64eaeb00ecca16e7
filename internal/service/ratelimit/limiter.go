package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	lim  *rate.Limiter
	seen time.Time
}

// Limiter keeps one token bucket per key (client address plus endpoint).
type Limiter struct {
	mu    sync.Mutex
	m     map[string]*entry
	rps   rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time
}

// New creates a limiter refilling rps tokens per second up to burst for every key.
func New(rps float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		m:     make(map[string]*entry),
		rps:   rate.Limit(rps),
		burst: burst,
		idle:  10 * time.Minute,
		now:   time.Now,
	}
}

// Allow reports whether one request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	e, ok := l.m[key]
	if !ok {
		e = &entry{lim: rate.NewLimiter(l.rps, l.burst)}
		l.m[key] = e
		if len(l.m) > 1024 {
			l.prune(now)
		}
	}
	e.seen = now
	l.mu.Unlock()

	return e.lim.AllowN(now, 1)
}

// prune drops buckets idle for longer than l.idle. Callers hold l.mu.
func (l *Limiter) prune(now time.Time) {
	for k, e := range l.m {
		if now.Sub(e.seen) > l.idle {
			delete(l.m, k)
		}
	}
}
