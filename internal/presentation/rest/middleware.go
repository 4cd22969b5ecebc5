package rest

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets the stream endpoint upgrade through the logging middleware.
func (rw *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}

// LoggingMiddleware logs every HTTP request with method, path, status, duration, and remote address.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// DefaultClientIdleTTL is how long a client's bucket is kept without requests.
// A bucket idle this long has refilled, so dropping it changes nothing.
const DefaultClientIdleTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter keeps a token bucket per client address. Buckets idle for
// longer than the idle TTL are swept on a later Allow call.
type ClientRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	now       func() time.Time
	lastSweep time.Time
	idleTTL   time.Duration
	rps       rate.Limit
	burst     int
}

// NewClientRateLimiter allows rps requests per second per client, with a
// burst of the same size.
func NewClientRateLimiter(rps int) *ClientRateLimiter {
	return &ClientRateLimiter{
		clients:   make(map[string]*clientBucket),
		now:       time.Now,
		lastSweep: time.Now(),
		idleTTL:   DefaultClientIdleTTL,
		rps:       rate.Limit(rps),
		burst:     rps,
	}
}

// Allow reports whether a request from client is permitted.
func (rl *ClientRateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweepLocked(now)
	}
	b, ok := rl.clients[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[client] = b
	}
	b.lastSeen = now
	rl.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// Sweep drops clients not seen within the idle TTL of now and returns how
// many were removed.
func (rl *ClientRateLimiter) Sweep(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.sweepLocked(now)
}

func (rl *ClientRateLimiter) sweepLocked(now time.Time) int {
	removed := 0
	for client, b := range rl.clients {
		if now.Sub(b.lastSeen) >= rl.idleTTL {
			delete(rl.clients, client)
			removed++
		}
	}
	rl.lastSweep = now
	return removed
}

// Clients returns the number of tracked client buckets.
func (rl *ClientRateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// RateLimitMiddleware applies per-client rate limiting to incoming HTTP requests.
func RateLimitMiddleware(limiter *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientAddr(r)) {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
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
