// Package server wires handlers, middleware and routes together and owns
// the HTTP server lifecycle. main.go stays minimal: load config, open the
// store, hand both to New, call Start.
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

	"github.com/chhitz007/Blog-Posts/internal/auth"
	"github.com/chhitz007/Blog-Posts/internal/config"
	"github.com/chhitz007/Blog-Posts/internal/handler"
	"github.com/chhitz007/Blog-Posts/internal/middleware"
	"github.com/chhitz007/Blog-Posts/internal/repository/mongodb"
	"github.com/chhitz007/Blog-Posts/internal/service"
)

// Server holds the router and the store it owns. The store is closed during
// graceful shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  *mongodb.Store
}

// New assembles the full dependency chain:
//
//	mongodb.Store → services → handlers → routes
//
// Services receive the store through the repository interfaces, handlers
// receive services, and nothing below the handler layer sees HTTP.
func New(cfg config.Config, logger *slog.Logger, store *mongodb.Store) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes registers middleware and the route table:
//
//	GET       /                    → list all posts
//	GET/POST  /register            → create account
//	GET/POST  /login               → start session
//	GET       /logout              → end session           (auth)
//	GET/POST  /create_post         → author a post         (auth)
//	GET/POST  /view_post/{id}      → view post / append comment
//	GET/POST  /edit_post/{id}      → edit an existing post (auth)
func (s *Server) setupRoutes() error {
	sessions, err := auth.NewSessionService(s.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("creating session service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.store.Users(), sessions, passwords, s.logger)
	postService := service.NewPostService(s.store.Posts(), s.logger)

	renderer, err := handler.NewRenderer(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	authHandler := handler.NewAuthHandler(authService, renderer, s.logger)
	postHandler := handler.NewPostHandler(postService, renderer, s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Every route gets the current user loaded (or not) from the session
	// cookie; only the write-capable routes require one.
	s.router.Use(auth.CurrentUser(sessions, s.store.Users()))

	s.router.Get("/", postHandler.HandleIndex)

	s.router.Get("/register", authHandler.HandleRegisterForm)
	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Get("/login", authHandler.HandleLoginForm)
	s.router.Post("/login", authHandler.HandleLogin)

	s.router.Get("/view_post/{id}", postHandler.HandleView)
	s.router.Post("/view_post/{id}", postHandler.HandleComment)

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)

		r.Get("/logout", authHandler.HandleLogout)
		r.Get("/create_post", postHandler.HandleCreateForm)
		r.Post("/create_post", postHandler.HandleCreate)
		r.Get("/edit_post/{id}", postHandler.HandleEditForm)
		r.Post("/edit_post/{id}", postHandler.HandleEdit)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, close
// the store.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         ":" + s.config.Port,
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
			slog.String("addr", srv.Addr),
			slog.String("database", s.config.MongoDatabase),
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
		if err := s.store.Close(ctx); err != nil {
			return fmt.Errorf("closing store: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
