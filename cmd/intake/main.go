package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brockcsc/volunteer-intake/internal/config"
	"github.com/brockcsc/volunteer-intake/internal/handlers"
	"github.com/brockcsc/volunteer-intake/internal/logging"
	"github.com/brockcsc/volunteer-intake/internal/middleware"
	"github.com/brockcsc/volunteer-intake/internal/notify"
	"github.com/brockcsc/volunteer-intake/internal/ratelimit"
	"github.com/brockcsc/volunteer-intake/internal/server"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("intake"))
	logging.SetDefault(logger)

	slog.Info("Starting intake service",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)
	if *configPath != "" {
		slog.Info("Loaded configuration", slog.String("config_path", *configPath))
	}

	// Initialize rate limiter
	var limiter *ratelimit.Limiter
	var store ratelimit.Store
	if cfg.Redis.Enabled && cfg.RateLimit.Enabled {
		redisStore, err := ratelimit.NewRedisStore(cfg.Redis.URL)
		if err != nil {
			log.Printf("WARNING: Failed to connect to Redis: %v", err)
			log.Println("Continuing without rate limiting")
		} else {
			store = redisStore
			limiter = ratelimit.New(redisStore, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
			log.Printf("Rate limiting enabled: %d requests per %s", cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
			defer redisStore.Close()
		}
	} else {
		if !cfg.Redis.Enabled {
			log.Println("Redis disabled - rate limiting not available")
		}
		if !cfg.RateLimit.Enabled {
			log.Println("Rate limiting disabled in configuration")
		}
	}

	// Initialize notification channel
	var notifier notify.Channel
	if cfg.Discord.WebhookURL != "" {
		notifier = notify.NewDiscordChannel(cfg.Discord.WebhookURL, cfg.Discord.Timeout)
		log.Println("Discord notification channel configured")
	} else {
		// An unconfigured Discord channel still fails submissions with a
		// clear error; LogChannel is only for local development.
		if os.Getenv("INTAKE_DEV_LOG_CHANNEL") == "1" {
			notifier = notify.NewLogChannel(log.Printf)
			log.Println("WARNING: Using log notification channel - submissions will not be delivered")
		} else {
			notifier = notify.NewDiscordChannel("", cfg.Discord.Timeout)
			log.Println("WARNING: Discord webhook URL not configured - submissions will be rejected")
		}
	}

	submitCfg := handlers.SubmitConfig{
		AllowedOrigins: cfg.Intake.AllowedOrigins,
	}
	if cfg.Intake.EnforceCutoff {
		cutoff, err := cfg.Intake.Cutoff()
		if err != nil {
			log.Fatalf("Failed to parse cutoff date: %v", err)
		}
		submitCfg.Cutoff = cutoff
		log.Printf("Application cutoff enforced: %s", cutoff)
	}

	// Initialize HTTP handlers
	submitHandler := handlers.NewSubmitHandler(limiter, notifier, logger, submitCfg)
	healthHandler := handlers.NewHealthHandler(store)
	router := server.NewRouter(submitHandler, healthHandler, middleware.DefaultCORSConfig())

	// Create server with config values
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Intake service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
