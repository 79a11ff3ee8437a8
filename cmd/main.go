/*
Package main is the entry point for the Scrum Poker backend.

It loads configuration, initializes the global logger, connects to
PostgreSQL (applying migrations), wires the identity resolver and the
estimation service into the HTTP router, and handles operating system
interrupt signals for a graceful shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Antriksh29071989/scrumpoker/internal/app/db"
	"github.com/Antriksh29071989/scrumpoker/internal/app/identity"
	"github.com/Antriksh29071989/scrumpoker/internal/app/poker"
	"github.com/Antriksh29071989/scrumpoker/internal/app/store"
	"github.com/Antriksh29071989/scrumpoker/internal/configs"
	"github.com/Antriksh29071989/scrumpoker/internal/handler"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/logx"
)

func main() {
	// A missing .env file is fine; environment variables may come from the host.
	_ = godotenv.Load()

	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.Init(cfg.Environment == "development")
	logx.Info("Configuration loaded",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"allowed_origins", cfg.AllowedOrigins,
		"legacy_identity", cfg.AllowLegacyIdentity,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to database")
	}
	defer pool.Close()

	pokerService := poker.NewService(store.NewPostgres(pool))

	var verifier identity.TokenVerifier
	switch {
	case cfg.AuthJWTSecret != "":
		verifier = identity.NewLocalVerifier(cfg.AuthJWTSecret)
		logx.Info("Using local JWT token verification")
	case cfg.AuthBaseURL != "":
		verifier = identity.NewProviderVerifier(cfg.AuthBaseURL)
		logx.Info("Using remote token verification", "auth_base_url", cfg.AuthBaseURL)
	default:
		logx.Warn("No token verifier configured; only the legacy identity fallback will work")
	}

	deps := &handler.AppDeps{
		Config: cfg,
		Poker:  pokerService,
		Auth:   identity.NewAuthenticator(verifier, cfg.AllowLegacyIdentity),
	}

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler.Router(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Scrum Poker backend starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
