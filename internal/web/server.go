// Package web provides the HTTP server and handlers for the string analyzer API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/JonMunkholm/stringanalyzer/internal/audit"
	"github.com/JonMunkholm/stringanalyzer/internal/config"
	"github.com/JonMunkholm/stringanalyzer/internal/core"
	mw "github.com/JonMunkholm/stringanalyzer/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds request bodies for string creation.
const maxBodyBytes = 1 << 20

// FactSource provides the fact shown by the profile endpoint.
type FactSource interface {
	Fact(ctx context.Context) (string, error)
}

// Server is the HTTP server for the string analyzer.
type Server struct {
	registry *core.Registry
	audit    *audit.Recorder
	facts    FactSource
	cfg      *config.Config

	router  *chi.Mux
	server  *http.Server
	limiter *rateLimiter
	now     func() time.Time
}

// NewServer creates a Server around registry. recorder and facts may be nil.
func NewServer(registry *core.Registry, recorder *audit.Recorder, facts FactSource, cfg *config.Config) *Server {
	s := &Server{
		registry: registry,
		audit:    recorder,
		facts:    facts,
		cfg:      cfg,
		router:   chi.NewRouter(),
		now:      time.Now,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.limiter = newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(s.limiter.middleware)
	}

	var keys []string
	if s.cfg.Security.RequireAPIKey {
		keys = s.cfg.Security.APIKeys
	}
	s.router.Use(mw.APIKeyAuth(keys, respondError))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/me", s.handleMe)

	s.router.Route("/strings", func(r chi.Router) {
		r.Post("/", s.handleCreateString)
		r.Get("/", s.handleListStrings)
		r.Get("/filter-by-natural-language", s.handleNaturalLanguageFilter)
		r.Get("/{value}", s.handleGetString)
		r.Delete("/{value}", s.handleDeleteString)
	})
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is cancelled, then shuts down
// gracefully. It returns only once in-flight requests have finished or
// ShutdownTimeout has passed, so callers may release shared resources
// (the audit pool) right after it returns.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Addr:         ln.Addr().String(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.server.Serve(ln) }()

	select {
	case err := <-errCh:
		s.stopLimiter()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopLimiter()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) stopLimiter() {
	if s.limiter != nil {
		s.limiter.stop()
	}
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				// JSON API only; nothing should ever be loaded from a response.
				w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
