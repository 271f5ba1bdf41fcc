package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"country-explorer/internal/apperror"
)

func fixedClock(rl *RateLimiter, start time.Time) *time.Time {
	now := start
	rl.now = func() time.Time { return now }
	rl.lastSweep = start
	return &now
}

func TestRateLimiter_FixedQuotaPerWindow(t *testing.T) {
	rl := NewRateLimiter(15*time.Minute, 100, zerolog.Nop())
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := fixedClock(rl, start)

	allowed := 0
	for elapsed := time.Duration(0); elapsed < 15*time.Minute; elapsed += time.Second {
		*now = start.Add(elapsed)
		if ok, _ := rl.Allow("10.0.0.1"); ok {
			allowed++
		}
	}
	assert.Equal(t, 100, allowed)

	*now = start.Add(15 * time.Minute)
	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok, "quota resets when the window ends")
}

func TestRateLimiter_RejectsUntilWindowEnds(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 3, zerolog.Nop())
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := fixedClock(rl, start)

	for i := 0; i < 3; i++ {
		*now = start.Add(time.Duration(i) * 10 * time.Second)
		ok, _ := rl.Allow("10.0.0.1")
		assert.True(t, ok, "request %d", i)
	}

	*now = start.Add(40 * time.Second)
	ok, retry := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 20*time.Second, retry)

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "other clients have their own quota")

	*now = start.Add(59 * time.Second)
	ok, _ = rl.Allow("10.0.0.1")
	assert.False(t, ok)

	*now = start.Add(time.Minute)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)
}

func TestRateLimiter_SweepsExpiredWindows(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 1, zerolog.Nop())
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := fixedClock(rl, start)

	rl.Allow("a")
	rl.Allow("b")
	assert.Len(t, rl.visitors, 2)

	*now = start.Add(2 * time.Minute)
	rl.Allow("c")
	assert.Len(t, rl.visitors, 1)
}

func TestRateLimiter_MiddlewareRejects(t *testing.T) {
	rl := NewRateLimiter(time.Hour, 1, zerolog.Nop())
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("192.0.2.1:1111").Code)

	rec := send("192.0.2.1:2222")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	retry := rec.Header().Get("Retry-After")
	assert.NotEmpty(t, retry)
	assert.LessOrEqual(t, len(retry), 4, "at most an hour in seconds")
	body := decodeBody(t, rec)
	assert.Equal(t, apperror.CodeRateLimited, body.Code)
	assert.Equal(t, http.StatusTooManyRequests, body.Status)

	assert.Equal(t, http.StatusOK, send("192.0.2.9:1111").Code)
}
