// Package http exposes the goal API over JSON with rate limiting, security
// headers and a read-through cache for calculated goal views.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"nestegg/internal/cache"
	"nestegg/internal/core"
	"nestegg/internal/services"
)

const listCacheKey = "goals:list"

type Server struct {
	http.Server
	service     *services.GoalService
	rateLimiter *rateLimiter

	// Calculated views are cheap to rebuild, so the cache only smooths
	// request bursts. Writes invalidate; TTL covers time-dependent drift.
	goalCache    *cache.LRUCache[core.GoalWithCalculations]
	listCache    *cache.LRUCache[[]core.GoalWithCalculations]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// Options tune the server caches. Zero values fall back to defaults.
type Options struct {
	CacheTTL     time.Duration
	CacheMaxSize int
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, service *services.GoalService, opts Options) *Server {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.CacheMaxSize <= 0 {
		opts.CacheMaxSize = 200
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		service:      service,
		rateLimiter:  newRateLimiter(),
		goalCache:    cache.NewLRUCache[core.GoalWithCalculations](opts.CacheMaxSize, opts.CacheTTL),
		listCache:    cache.NewLRUCache[[]core.GoalWithCalculations](1, opts.CacheTTL),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.goalCache)
	s.cacheManager.Register(s.listCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /goals", s.withMiddleware(s.handleCreateGoal))
	mux.HandleFunc("GET /goals", s.withMiddleware(s.handleListGoals))
	mux.HandleFunc("GET /goals/{id}", s.withMiddleware(s.handleGetGoal))
	mux.HandleFunc("DELETE /goals/{id}", s.withMiddleware(s.handleDeleteGoal))
	mux.HandleFunc("GET /goals/{id}/contributions", s.withMiddleware(s.handleListContributions))
	mux.HandleFunc("POST /goals/{id}/contributions", s.withMiddleware(s.handleRecordContribution))
	mux.HandleFunc("POST /contributions/{id}/confirm", s.withMiddleware(s.handleConfirmContribution))

	return s
}

// Shutdown stops the server along with the cache and rate limiter cleanup
// goroutines. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate limit mutating requests only; reads are cached anyway.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Listing goals exercises the full read path including storage.
	if _, err := s.service.ListGoalsWithCalculations(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func goalCacheKey(id string) string {
	return "goal:" + id
}

func (s *Server) invalidateGoal(id string) {
	s.goalCache.Delete(goalCacheKey(id))
	s.listCache.Delete(listCacheKey)
}
