package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cipherstudio/internal/auth"
	"cipherstudio/internal/config"
	"cipherstudio/internal/handler"
	"cipherstudio/internal/middleware"
	"cipherstudio/internal/repository"
	"cipherstudio/internal/server"
	authSvc "cipherstudio/internal/service/auth"
	"cipherstudio/internal/service/playground"
	"cipherstudio/internal/templates"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Optional log file next to the console output
	var logFile io.Writer
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logFile = f
	}

	// Setup structured logging
	logger := config.NewLogger(cfg, logFile)
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", cfg.StorageDriver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// JWT verifier: JWKS when configured, shared secret otherwise
	var jwtVerifier auth.JWTVerifier
	var err error
	if cfg.JWKSURL != "" {
		jwtVerifier, err = auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	} else {
		jwtVerifier, err = auth.NewHMACVerifier(cfg.JWTSecret, logger)
	}
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	// Starter file templates
	registry, err := templates.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	logger.Info("templates loaded", "frameworks", registry.Frameworks())

	// Services
	guard := authSvc.NewOwnerGuard(store.Projects, store.Files)
	projectService := playground.NewProjectService(store.Projects, store.Files, store.TxManager, guard, registry, logger)
	fileService := playground.NewFileService(store.Files, store.TxManager, guard, logger)
	treeService := playground.NewTreeService(store.Files, guard, registry, logger)

	logger.Info("services initialized")

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRequests > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitBurst)
		defer limiter.Close()
	}

	router := server.NewRouter(server.Dependencies{
		Projects:    handler.NewProjectHandler(projectService, logger),
		Files:       handler.NewFileHandler(fileService, treeService, logger),
		Verifier:    jwtVerifier,
		RateLimiter: limiter,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	// Create HTTP server
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
		logger.Info("server stopped")
	}
}
