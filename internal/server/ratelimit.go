package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"resumescore/internal/errors"
)

const idleBucketTTL = 10 * time.Minute

type clientBucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

// RateLimiter keeps one token bucket per client, keyed "api_key:<key>" or
// "ip:<addr>". Buckets idle for longer than idleBucketTTL are swept.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*clientBucket
	perSec  rate.Limit
	burst   int
	now     func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
	logger    *errors.Logger
}

// NewRateLimiter allows requestsPerMin per client with the given burst and
// starts the sweeper, which runs until Close.
func NewRateLimiter(requestsPerMin, burst int, logger *errors.Logger) *RateLimiter {
	if logger == nil {
		logger = errors.Discard()
	}
	rl := &RateLimiter{
		buckets: make(map[string]*clientBucket),
		perSec:  rate.Limit(float64(requestsPerMin) / 60),
		burst:   burst,
		now:     time.Now,
		stop:    make(chan struct{}),
		logger:  logger,
	}
	go rl.sweepLoop()
	return rl
}

// Allow takes a token from the client's bucket.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rl.perSec, rl.burst)}
		rl.buckets[client] = b
	}
	b.seen = rl.now()
	rl.mu.Unlock()

	return b.limiter.Allow()
}

// GetStats reports the bucket count and the configured rates.
func (rl *RateLimiter) GetStats() map[string]any {
	rl.mu.Lock()
	active := len(rl.buckets)
	rl.mu.Unlock()

	return map[string]any{
		"active_limiters": active,
		"rate_per_minute": float64(rl.perSec) * 60,
		"burst_capacity":  rl.burst,
	}
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(idleBucketTTL)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops buckets not used within idleBucketTTL.
func (rl *RateLimiter) sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idleBucketTTL)
	removed := 0
	for client, b := range rl.buckets {
		if b.seen.Before(cutoff) {
			delete(rl.buckets, client)
			removed++
		}
	}
	if removed > 0 {
		rl.logger.Debug("Evicted idle rate limit buckets", "removed", removed, "remaining", len(rl.buckets))
	}
	return removed
}

// Close stops the sweeper. Safe to call repeatedly.
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.stop) })
}

func (s *Server) rateLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	cfg := s.RateLimit
	if s.RateLimiter == nil || cfg == nil || !cfg.Enabled {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			clientType, id := rateLimitClient(r, cfg.ByAPIKey, cfg.ByIP)
			if clientType == "" || s.RateLimiter.Allow(clientType+":"+id) {
				next(w, r)
				return
			}

			s.Observability.RecordRateLimitHit(r.Context(), clientType)
			s.Logger.Info("Rate limit exceeded",
				"client_type", clientType,
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r))
			w.Header().Set("Retry-After", "60")
			writeErrorResponse(w, "Rate limit exceeded", "Too many requests", http.StatusTooManyRequests)
		}
	}
}

// rateLimitClient picks the bucket owner: the API key when keyed limits are
// on and a key was sent, else the client IP. Empty means unlimited.
func rateLimitClient(r *http.Request, byAPIKey, byIP bool) (clientType, id string) {
	if key := extractAPIKey(r); byAPIKey && key != "" {
		return "api_key", key
	}
	if byIP {
		return "ip", getClientIP(r)
	}
	return "", ""
}

// getClientIP uses the first valid X-Forwarded-For entry, then X-Real-IP,
// then the connection address.
func getClientIP(r *http.Request) string {
	for candidate := range strings.SplitSeq(r.Header.Get("X-Forwarded-For"), ",") {
		candidate = strings.TrimSpace(candidate)
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
