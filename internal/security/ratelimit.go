package security

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements a simple fixed-window rate limiter keyed by client IP
type RateLimiter struct {
	clients map[string]*clientBucket
	mu      sync.Mutex
	limit   int           // requests per window
	window  time.Duration // time window
}

type clientBucket struct {
	remaining   int
	windowStart time.Time
}

// NewRateLimiter creates a rate limiter allowing limit requests per window
// for each client IP
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		limit:   limit,
		window:  window,
	}
	go rl.cleanup()
	return rl
}

// Allow checks whether a request from ip should be allowed
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.clients[ip]
	if !ok || now.Sub(b.windowStart) >= rl.window {
		rl.clients[ip] = &clientBucket{remaining: rl.limit - 1, windowStart: now}
		return true
	}

	if b.remaining > 0 {
		b.remaining--
		return true
	}

	return false
}

// cleanup drops stale client entries so the map doesn't grow without bound
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, b := range rl.clients {
			if now.Sub(b.windowStart) > rl.window*2 {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// GetClientIP extracts the client IP from the request
func GetClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (when behind proxy)
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	// Check X-Real-IP header
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
