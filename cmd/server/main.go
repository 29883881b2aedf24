package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"invitepush/config"
	"invitepush/internal/adapters/fcm"
	"invitepush/internal/adapters/google"
	delivery "invitepush/internal/delivery/http"
	"invitepush/internal/delivery/http/controllers"
	"invitepush/internal/delivery/http/middleware"
	"invitepush/internal/domain"
	"invitepush/internal/repository/postgres"
	"invitepush/internal/services"
)

// Endpoint name used as the rate-limit key, matching the database function's
// per-endpoint counters.
const rateLimitEndpoint = "get-event-invite"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		// The handle is lazy; a cold database at boot is not fatal.
		logger.Warn("database not reachable yet", "error", err)
	}

	creds := &domain.ServiceCredentials{
		ProjectID:   cfg.FCMProjectID,
		ClientEmail: cfg.FCMClientEmail,
		PrivateKey:  cfg.FCMPrivateKey,
	}
	if err := creds.Validate(); err != nil {
		logger.Warn("push credentials incomplete; webhook deliveries will fail with 500")
	}

	// Repositories
	profiles := postgres.NewProfileRepository(db)
	limiter := postgres.NewRateLimitRepository(db)

	// Adapters
	tokens := google.NewTokenSource(creds)
	sender := fcm.NewClient(cfg.FCMProjectID, tokens)

	// Services
	forwarder := services.NewForwarderService(profiles, creds, sender, logger)

	// HTTP
	ctrl := controllers.NewWebhookController(logger, forwarder, cfg.WebhookTable)
	handler := middleware.RateLimit(limiter, rateLimitEndpoint, cfg.RateLimitMaxRequests, cfg.RateLimitWindowMinutes, logger)(
		middleware.RequireWebhookSecret(cfg.WebhookSecret, logger)(ctrl.Handle),
	)
	mux := delivery.NewRouter(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.LoggingMiddleware(logger, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "port", cfg.Port, "table", cfg.WebhookTable, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
