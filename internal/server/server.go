// Package server wires the application together: it owns the router, the
// dependency graph, and the server lifecycle.
//
// The composition root lives here. main.go reads configuration and calls
// New; everything else (database, services, handlers, middleware, routes)
// is assembled in one place so the dependency flow is visible at a glance:
//
//	sqlite.DB → services → handlers → routes
//
// Handlers never touch the database; services never touch HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rkormilcyn/portfolio/internal/auth"
	"github.com/rkormilcyn/portfolio/internal/handler"
	"github.com/rkormilcyn/portfolio/internal/middleware"
	sqliteRepo "github.com/rkormilcyn/portfolio/internal/repository/sqlite"
	"github.com/rkormilcyn/portfolio/internal/service"
)

// Config holds everything the server needs to run. main.go fills it from
// the environment; tests can fill it directly.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DBPath      string

	// SessionSecret signs the session cookies. Must be at least 16 chars.
	SessionSecret string

	GitHub auth.Credentials
	Yandex auth.Credentials

	Page handler.PageConfig
}

// Server is the HTTP server and the resources it owns. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency graph and returns a Server ready to
// Start. On any wiring error the database is closed before returning.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, handlers, and the route table.
//
// Route structure:
//
//	GET  /                          → index page (HTML)
//	GET  /static/*                  → static files
//	GET  /login/{provider}          → redirect to the OAuth provider
//	GET  /auth/{provider}/callback  → complete the OAuth login
//	GET  /logout                    → clear the session, redirect home
//	GET  /comments                  → list comments (JSON)
//	POST /comments                  → create a comment (JSON, auth required)
//	GET  /api/me                    → current user (JSON, auth required)
func (s *Server) setupRoutes() error {
	sessions, err := auth.NewSessionService(s.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("creating session service: %w", err)
	}

	registry := auth.NewRegistry(s.config.GitHub, s.config.Yandex)

	authService := service.NewAuthService(s.db, sessions, s.logger)
	commentService := service.NewCommentService(s.db, s.logger)

	// The project list is static content; seed it so a fresh database
	// renders a complete page.
	projectService := service.NewProjectService(s.db, s.logger)
	if err := projectService.Seed(context.Background()); err != nil {
		return fmt.Errorf("seeding projects: %w", err)
	}

	authHandler := handler.NewAuthHandler(registry, authService, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, authService, s.logger)
	homeHandler, err := handler.NewHomeHandler(
		s.config.TemplateDir, projectService, commentService, authService, s.config.Page, s.logger,
	)
	if err != nil {
		return fmt.Errorf("creating home handler: %w", err)
	}

	// Global middleware, in order: request id first so the logger can
	// include it, recoverer last so panics in other middleware are caught.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Public pages that still want to know WHO is asking, if anyone.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(sessions))
		r.Get("/", homeHandler.HandleIndex)
		r.Get("/logout", authHandler.HandleLogout)
	})

	// OAuth flow. No session middleware: these routes create the session.
	s.router.Get("/login/{provider}", authHandler.HandleLogin)
	s.router.Get("/auth/{provider}/callback", authHandler.HandleCallback)

	// Comment board: reading is public, writing needs a session.
	s.router.Get("/comments", commentHandler.HandleList)
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(sessions))
		r.Post("/comments", commentHandler.HandleCreate)
		r.Get("/api/me", authHandler.HandleMe)
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, drain in-flight requests (30s budget), close
// the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
