package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const ERROR_CODE_RATE_LIMITED = "RATE_LIMITED"

// Limiters unused for this long are dropped on the next sweep.
const LIMITER_IDLE_TTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu             sync.Mutex
	limits         map[string]*clientLimiter
	rps            rate.Limit
	burst          int
	trustedProxies map[string]bool
	idleTTL        time.Duration
	lastSweep      time.Time
	now            func() time.Time
}

// NewRateLimiter allows perSecond requests per client with the given burst.
// X-Forwarded-For is only honored on requests coming from trustedProxies.
func NewRateLimiter(perSecond float64, burst int, trustedProxies ...string) *RateLimiter {
	trusted := make(map[string]bool, len(trustedProxies))
	for _, p := range trustedProxies {
		trusted[p] = true
	}
	return &RateLimiter{
		limits:         make(map[string]*clientLimiter),
		rps:            rate.Limit(perSecond),
		burst:          burst,
		trustedProxies: trusted,
		idleTTL:        LIMITER_IDLE_TTL,
		lastSweep:      time.Now(),
		now:            time.Now,
	}
}

// getLimiter gets or creates a limiter for the given key.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	if cl, ok := rl.limits[key]; ok {
		cl.lastSeen = now
		return cl.limiter
	}
	cl := &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst), lastSeen: now}
	rl.limits[key] = cl
	return cl.limiter
}

// sweep must be called with the lock held.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, cl := range rl.limits {
		if now.Sub(cl.lastSeen) >= rl.idleTTL {
			delete(rl.limits, key)
		}
	}
	rl.lastSweep = now
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Len is the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limits)
}

// ClientIP is the peer address host. When the peer is a trusted proxy, the
// first X-Forwarded-For hop is used instead.
func (rl *RateLimiter) ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !rl.trustedProxies[host] {
		return host
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return host
}

// Middleware answers 429 once a client exceeds its budget.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(rl.ClientIP(r)) {
			writeError(w, http.StatusTooManyRequests, ERROR_CODE_RATE_LIMITED, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
