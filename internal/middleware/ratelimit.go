package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"country-explorer/internal/apperror"
)

const rateLimitMessage = "Too many login/register attempts. Please try again later."

type visitor struct {
	windowStart time.Time
	count       int
}

// RateLimiter allows each client address max requests per fixed window.
// Requests over quota are rejected, never queued.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	window    time.Duration
	max       int
	lastSweep time.Time
	now       func() time.Time
	logger    zerolog.Logger
	warnLog   rate.Sometimes
}

func NewRateLimiter(window time.Duration, max int, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		window:    window,
		max:       max,
		lastSweep: time.Now(),
		now:       time.Now,
		logger:    logger,
		warnLog:   rate.Sometimes{Interval: time.Second},
	}
}

// Allow counts one request for client. When the quota is spent it returns
// false and the time left until the client's window resets.
func (rl *RateLimiter) Allow(client string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	v, ok := rl.visitors[client]
	if !ok || !now.Before(v.windowStart.Add(rl.window)) {
		v = &visitor{windowStart: now}
		rl.visitors[client] = v
	}
	if v.count >= rl.max {
		return false, v.windowStart.Add(rl.window).Sub(now)
	}
	v.count++
	return true, 0
}

// sweep drops clients whose window has ended. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	for client, v := range rl.visitors {
		if !now.Before(v.windowStart.Add(rl.window)) {
			delete(rl.visitors, client)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddr(r)
			allowed, retryAfter := rl.Allow(client)
			if !allowed {
				rl.warnLog.Do(func() {
					rl.logger.Warn().Str("client", client).Str("path", r.URL.Path).Msg("Rate limit exceeded")
				})
				w.Header().Set("Retry-After", strconv.Itoa(int((retryAfter+time.Second-1)/time.Second)))
				respondWithError(w, apperror.RateLimit(rateLimitMessage))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
