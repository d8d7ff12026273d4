package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"cipherstudio/internal/httputil"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per caller
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows requests tokens per window with burst capacity
func NewRateLimiter(requests int, window time.Duration, burst int) *RateLimiter {
	// Convert requests/window to tokens/second
	tokensPerSecond := float64(requests) / window.Seconds()

	l := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate.Limit(tokensPerSecond),
		burst:   burst,
		stop:    make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

// Allow reports whether key may make a request now. When it may not, the
// returned duration is how long to wait before retrying.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = time.Now()
	l.mu.Unlock()

	reservation := b.limiter.Reserve()
	if !reservation.OK() {
		return false, time.Second
	}
	if delay := reservation.Delay(); delay > 0 {
		reservation.Cancel()
		return false, max(delay, time.Second)
	}
	return true, 0
}

// cleanupLoop removes idle buckets every 10 minutes
func (l *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now().Add(-10 * time.Minute))
		case <-l.stop:
			return
		}
	}
}

func (l *RateLimiter) cleanup(staleBefore time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if b.lastSeen.Before(staleBefore) && b.limiter.Tokens() >= float64(l.burst) {
			delete(l.buckets, key)
		}
	}
}

// Close stops the cleanup goroutine
func (l *RateLimiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

// RateLimit rejects callers that exceed their bucket with 429.
// Authenticated callers are keyed by identity, others by client IP.
func RateLimit(limiter *RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + clientIP(r)
			if userID := httputil.GetUserID(r); userID != "" {
				key = "user:" + userID
			}

			allowed, retryAfter := limiter.Allow(key)
			if !allowed {
				logger.Warn("rate limit exceeded", "key", key, "path", r.URL.Path)
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
				httputil.RespondError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
