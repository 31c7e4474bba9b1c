// Package http is the presentation boundary: login and logout, the
// rendered dashboard page, the JSON API and the middleware stack.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"profilo/internal/cache"
	"profilo/internal/config"
	"profilo/internal/core"
	"profilo/internal/log"
	"profilo/internal/middleware/ratelimit"
	"profilo/internal/middleware/security"
	"profilo/internal/middleware/trace"
	"profilo/internal/services"
	"profilo/web"
)

const (
	sessionTTL      = 24 * time.Hour
	staticMaxAge    = 86400
	shutdownTimeout = 10 * time.Second
)

// Server serves the dashboard UI and API on top of ProfileService.
type Server struct {
	httpServer *http.Server
	service    *services.ProfileService
	templates  *template.Template
	sessions   *sessionStore
	dashboards *cache.LRU[core.Dashboard]
	limiter    *ratelimit.Limiter
	ips        *security.IPResolver
	logger     *log.Logger
}

func NewServer(cfg *config.Config, service *services.ProfileService, logger *log.Logger) (*Server, error) {
	templates, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		service:    service,
		templates:  templates,
		sessions:   newSessionStore(sessionTTL),
		dashboards: cache.NewLRU[core.Dashboard](cfg.CacheEntries, cfg.CacheTTL),
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: 10,
			CleanupInterval:   5 * time.Minute,
		}),
		ips:    security.NewIPResolver(),
		logger: logger.WithComponent(log.ComponentHTTP),
	}

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.buildHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) buildHandler() http.Handler {
	mux := http.NewServeMux()

	staticRoot, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		// The subtree is embedded at build time, so this cannot happen
		// with a well-formed binary.
		panic(fmt.Sprintf("static assets missing from embed: %v", err))
	}
	static := http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot)))
	mux.Handle("GET /static/", security.StaticAssetMiddleware(staticMaxAge)(static))

	mux.HandleFunc("GET /{$}", s.handleLoginPage)
	mux.Handle("POST /login", s.limiter.Middleware(s.ips.ClientIP, nil)(http.HandlerFunc(s.handleLogin)))
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/dashboard", s.handleAPIDashboard)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	var handler http.Handler = mux
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = trace.NewMiddleware(s.ips.ClientIP).Middleware(handler)
	handler = log.Middleware(s.logger)(handler)
	return handler
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RunJanitor periodically evicts expired sessions and cached dashboards
// until ctx is cancelled.
func (s *Server) RunJanitor(ctx context.Context) {
	cache.NewJanitor(time.Minute, s.sessions, s.dashboards).Run(ctx)
}

// Shutdown drains in-flight requests and stops the limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
