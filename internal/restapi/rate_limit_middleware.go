package restapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vnsites/sitemap/internal/models"
)

const anonymousKey = "__no_key__"

// RateLimitConfig sets how many requests each api key may make per Interval.
// A negative Requests disables limiting and zero rejects every request.
type RateLimitConfig struct {
	Requests   int
	Interval   time.Duration
	ExemptKeys []string
	// IdleAfter is how long a key may stay silent before its bucket is dropped.
	IdleAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyLimiter keeps one token bucket per api key.
type keyLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	exempt    map[string]struct{}
	idleAfter time.Duration
	now       func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

func newKeyLimiter(config RateLimitConfig) *keyLimiter {
	interval := config.Interval
	if interval <= 0 {
		interval = time.Second
	}
	idleAfter := config.IdleAfter
	if idleAfter <= 0 {
		idleAfter = 5 * time.Minute
	}

	l := &keyLimiter{
		buckets:   make(map[string]*bucket),
		burst:     max(config.Requests, 0),
		exempt:    make(map[string]struct{}, len(config.ExemptKeys)),
		idleAfter: idleAfter,
		now:       time.Now,
		done:      make(chan struct{}),
	}
	switch {
	case config.Requests < 0:
		l.limit = rate.Inf
	case config.Requests > 0:
		l.limit = rate.Every(interval / time.Duration(config.Requests))
	}
	for _, key := range config.ExemptKeys {
		l.exempt[key] = struct{}{}
	}

	go l.sweepPeriodically()
	return l
}

func (l *keyLimiter) allow(key string) bool {
	if l.limit == rate.Inf {
		return true
	}
	if _, ok := l.exempt[key]; ok {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	now := l.now()
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// sweep drops buckets idle since before now-idleAfter and reports how many remain.
func (l *keyLimiter) sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idleAfter {
			delete(l.buckets, key)
		}
	}
	return len(l.buckets)
}

func (l *keyLimiter) sweepPeriodically() {
	ticker := time.NewTicker(l.idleAfter)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.sweep(l.now())
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *keyLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// retryAfter is the whole number of seconds until a token is due.
func (l *keyLimiter) retryAfter() int {
	if l.limit == 0 {
		return int(time.Hour / time.Second)
	}
	wait := time.Duration(float64(time.Second) / float64(l.limit))
	return max(int(wait.Round(time.Second)/time.Second), 1)
}

// Middleware rejects requests over the key's budget with 429.
func (l *keyLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if key == "" {
			key = anonymousKey
		}

		if l.allow(key) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", strconv.Itoa(l.retryAfter()))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.burst))
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusTooManyRequests)

		response := models.NewResponse(http.StatusTooManyRequests,
			map[string]interface{}{"entry": nil},
			"Rate limit exceeded. Please try again later.")
		_ = json.NewEncoder(w).Encode(response)
	})
}
