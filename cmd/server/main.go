package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campfield/api/internal/config"
	"github.com/campfield/api/internal/database"
	"github.com/campfield/api/internal/handler"
	"github.com/campfield/api/internal/jobs"
	"github.com/campfield/api/internal/middleware"
	"github.com/campfield/api/internal/repository"
	"github.com/campfield/api/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	campgroundRepo := repository.NewCampgroundRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		SessionTTL:  cfg.Session.TTL,
	})

	campgroundService := service.NewCampgroundService(service.CampgroundServiceConfig{
		CampgroundRepo: campgroundRepo,
		ReviewRepo:     reviewRepo,
	})

	reviewService := service.NewReviewService(service.ReviewServiceConfig{
		ReviewRepo:     reviewRepo,
		CampgroundRepo: campgroundRepo,
	})

	// Initialize handlers
	sessionCookie := handler.SessionCookie{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	}
	authHandler := handler.NewAuthHandler(authService, sessionCookie)
	campgroundHandler := handler.NewCampgroundHandler(campgroundService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// Background sweeper reclaims expired sessions and orphaned reviews
	sweeper := jobs.NewSweeper(sessionRepo, reviewRepo, campgroundRepo, cfg.Session.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	// Set up routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /v1/auth/logout", authHandler.Logout)

	// Guard chains for protected routes
	authGuard := middleware.Guards(middleware.Authenticated())
	ownerGuard := middleware.Guards(
		middleware.Authenticated(),
		middleware.CampgroundOwner(campgroundRepo),
	)
	reviewGuard := middleware.Guards(
		middleware.Authenticated(),
		middleware.ReviewOwner(reviewRepo, middleware.ReviewDeletePolicy(cfg.Review.DeletePolicy)),
	)

	mux.Handle("GET /v1/auth/me", authGuard(http.HandlerFunc(authHandler.Me)))

	// Campground endpoints
	mux.HandleFunc("GET /v1/campgrounds", campgroundHandler.List)
	mux.HandleFunc("GET /v1/campgrounds/{campgroundId}", campgroundHandler.Get)
	mux.Handle("POST /v1/campgrounds", authGuard(http.HandlerFunc(campgroundHandler.Create)))
	mux.Handle("PUT /v1/campgrounds/{campgroundId}", ownerGuard(http.HandlerFunc(campgroundHandler.Update)))
	mux.Handle("DELETE /v1/campgrounds/{campgroundId}", ownerGuard(http.HandlerFunc(campgroundHandler.Delete)))

	// Review endpoints
	mux.Handle("POST /v1/campgrounds/{campgroundId}/reviews", authGuard(http.HandlerFunc(reviewHandler.Create)))
	mux.Handle("DELETE /v1/campgrounds/{campgroundId}/reviews/{reviewId}", reviewGuard(http.HandlerFunc(reviewHandler.Delete)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.SessionAuth(cfg.Session.CookieName, authService),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
