package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/fabianodasilvalira/tatystore-billing/internal/client"
	"github.com/fabianodasilvalira/tatystore-billing/internal/config"
	"github.com/fabianodasilvalira/tatystore-billing/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logr := logger.WithComponent("scheduler")

	gateway := client.New(cfg.API.BaseURL, cfg.GetAPITimeout(), logger.WithComponent("api-client"))
	cred := client.Credential{
		Token:       cfg.Auth.Token,
		AdminSecret: cfg.Auth.AdminSecret,
	}

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logr.Fatal().Err(err).Msg("invalid scheduler timezone")
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	_, err = c.AddFunc(cfg.Scheduler.MarkOverdueSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.GetAPITimeout())
		defer cancel()

		result, err := gateway.MarkOverdue(ctx, cred)
		if err != nil {
			logr.Error().Err(err).Msg("mark-overdue batch failed")
			return
		}
		// The count is informational; the server owns the transition.
		logr.Info().Int("updated", result.Updated).Msg("mark-overdue batch completed")
	})
	if err != nil {
		logr.Fatal().Err(err).Msg("could not schedule mark-overdue job")
	}

	c.Start()
	logr.Info().Str("spec", cfg.Scheduler.MarkOverdueSpec).Msg("scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info().Msg("shutting down scheduler")
	<-c.Stop().Done()
	logr.Info().Msg("scheduler stopped")
}
