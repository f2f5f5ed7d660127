// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
screen handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/portal are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/tinytales/internal/platform/config"
	"github.com/taibuivan/tinytales/internal/platform/constants"
	"github.com/taibuivan/tinytales/internal/platform/middleware"
	"github.com/taibuivan/tinytales/internal/platform/sec"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// RouteRegistrar is implemented by every screen handler.
type RouteRegistrar interface {
	RegisterRoutes(router chi.Router)
}

// # Handler Registry

// Handlers groups all screen HTTP handler sets.
//
// New screens add a field here and a Route line in [NewServer].
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Session handles login, logout and the current staff member.
	Session RouteRegistrar

	Books       RouteRegistrar
	Playlists   RouteRegistrar
	Lessons     RouteRegistrar
	Categories  RouteRegistrar
	Voices      RouteRegistrar
	Influencers RouteRegistrar
	Radio       RouteRegistrar
	Featured    RouteRegistrar
	Analytics   RouteRegistrar

	// Audit is the admin-only trail of staff mutations.
	Audit RouteRegistrar
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, sessions middleware.SessionResolver, csrfKey []byte, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.CSRF(csrfKey, middleware.CSRFOptions{
		Secure:         !cfg.IsDevelopment(),
		TrustedOrigins: cfg.TrustedOrigins(),
	}))
	r.Use(middleware.Authenticate(sessions, cfg.SessionCookie))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Admin API
	r.Route("/admin/v1", func(admin chi.Router) {
		admin.Route("/auth", h.Session.RegisterRoutes)

		// Every content screen needs at least an editor session.
		admin.Group(func(staff chi.Router) {
			staff.Use(middleware.RequireRole(sec.RoleEditor))

			staff.Route("/books", h.Books.RegisterRoutes)
			staff.Route("/playlists", h.Playlists.RegisterRoutes)
			staff.Route("/lessons", h.Lessons.RegisterRoutes)
			staff.Route("/categories", h.Categories.RegisterRoutes)
			staff.Route("/voices", h.Voices.RegisterRoutes)
			staff.Route("/influencers", h.Influencers.RegisterRoutes)
			staff.Route("/radio", h.Radio.RegisterRoutes)
			staff.Route("/featured", h.Featured.RegisterRoutes)
			staff.Route("/analytics", h.Analytics.RegisterRoutes)
		})

		admin.Group(func(owner chi.Router) {
			owner.Use(middleware.RequireRole(sec.RoleAdmin))
			owner.Route("/audit", h.Audit.RegisterRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
