package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cipherstudio/internal/httputil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	l := NewRateLimiter(60, time.Minute, 2)
	defer l.Close()

	ok, _ := l.Allow("user:a")
	assert.True(t, ok)
	ok, _ = l.Allow("user:a")
	assert.True(t, ok)

	ok, retry := l.Allow("user:a")
	assert.False(t, ok)
	assert.GreaterOrEqual(t, retry, time.Second)

	ok, _ = l.Allow("user:b")
	assert.True(t, ok, "buckets are independent")
}

func TestRateLimiter_CleanupKeepsBusyBuckets(t *testing.T) {
	l := NewRateLimiter(1, time.Hour, 1)
	defer l.Close()

	l.Allow("user:busy")
	l.cleanup(time.Now().Add(time.Minute))

	l.mu.Lock()
	_, exists := l.buckets["user:busy"]
	l.mu.Unlock()
	assert.True(t, exists, "a drained bucket must survive cleanup")
}

func TestRateLimiter_CloseIsIdempotent(t *testing.T) {
	l := NewRateLimiter(1, time.Second, 1)
	l.Close()
	l.Close()
}

func TestRateLimit_Middleware(t *testing.T) {
	l := NewRateLimiter(1, time.Hour, 1)
	defer l.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RateLimit(l, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/projects/user/me", nil)
	req = httputil.WithUserID(req, "alice")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"success":false,"message":"Too many requests"}`, rec.Body.String())

	// Anonymous callers are keyed by address
	anon := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, anon)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
