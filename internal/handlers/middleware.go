package handlers

import (
	"log"
	"net/http"
	"time"

	"tinymath/internal/security"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{rateLimiter: rateLimiter}
}

// RateLimit throttles requests per client IP; credential endpoints sit
// behind it so codes and passwords can't be brute-forced cheaply
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.rateLimiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// Health is a liveness endpoint
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
