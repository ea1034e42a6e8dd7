package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"hostpanel/internal/config"
	"hostpanel/internal/hetzner"
	"hostpanel/internal/notify"
	"hostpanel/internal/repository"
	"hostpanel/internal/server"
	"hostpanel/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logrus.New()

	// Load configuration (.env first so env overrides win)
	_ = godotenv.Load()
	cfgPath := "configs/config.yml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Hetzner client; without a token provider calls will fail with 401
	if cfg.Hetzner.APIToken == "" {
		logger.Warn("Hetzner API token is not set, VPS provisioning will not work")
	}
	hetznerClient := hetzner.NewClient(cfg.Hetzner.BaseURL, cfg.Hetzner.APIToken, logger)

	// Telegram notifier for operator alerts (optional)
	notifier, err := notify.NewTelegram(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without it", zap.Error(err))
		notifier = nil
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Compensating-delete worker
	cleanup := service.NewCleanupQueue(hetznerClient, notifier, logger)
	cleanup.Start(ctx)

	srv := server.NewServer(db, cfg, logger, log, hetznerClient, cleanup)

	// Optional periodic status sweep over provider-linked VPS rows
	if cfg.Hetzner.APIToken != "" && cfg.Hetzner.SyncIntervalMinutes > 0 {
		c := cron.New()
		spec := fmt.Sprintf("@every %dm", cfg.Hetzner.SyncIntervalMinutes)
		if _, err := c.AddFunc(spec, func() {
			srv.VpsService().SyncAll(ctx)
		}); err != nil {
			logger.Fatal("Failed to schedule VPS status sweep", zap.Error(err))
		}
		c.Start()
		defer c.Stop()
		logger.Info("Scheduled VPS status sweep", zap.String("spec", spec))
	}

	go srv.Run(cfg.Server.Host + ":" + cfg.Server.Port)

	<-ctx.Done()
	logger.Info("Application stopped.")
}
