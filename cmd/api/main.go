package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"mergebot/config"
	_ "mergebot/docs" // Swagger docs
	"mergebot/internal/command"
	eventUC "mergebot/internal/event/usecase"
	"mergebot/internal/httpserver"
	"mergebot/internal/registry"
	"mergebot/internal/repository/postgre"
	"mergebot/internal/synchronizer"
	"mergebot/internal/webhook"
	"mergebot/pkg/github"
	"mergebot/pkg/log"
)

// @title       Mergebot API
// @description Webhook ingestion and reconciliation core for GitHub merge automation.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Mergebot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		logger.Error(ctx, "Failed to open database: ", err)
		return
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Error(ctx, "Failed to ping database: ", err)
		return
	}

	repo := postgre.New(db, logger)

	// 4. Provider client
	ghClient := github.NewClient(cfg.GitHub.AccessToken)

	// 5. Actor registry
	reg := registry.New()

	// 6. Background synchronizer
	syncer := synchronizer.New(repo, ghClient, synchronizer.Config{
		QueueSize:    cfg.Sync.QueueSize,
		MaxRetries:   cfg.Sync.MaxRetries,
		RetryBackoff: cfg.Sync.RetryBackoff,
	}, logger)
	syncer.Start(ctx)

	// 7. Command interpreter
	interpreter := command.New(cfg.GitHub.TriggerWord, logger)

	// 8. Event dispatcher
	dispatcher := eventUC.New(repo, ghClient, reg, syncer, interpreter, eventUC.Config{
		AllowPrivateRepos: cfg.GitHub.AllowPrivateRepos,
	}, logger)

	// 9. Webhook delivery
	webhookHandler := webhook.NewHandler(logger, dispatcher, webhook.SecurityConfig{
		Secret:          cfg.Webhook.Secret,
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	})

	// 10. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		WebhookHandler: webhookHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 11. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
