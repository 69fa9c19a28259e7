package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/zatekoja/doseordering/internal/infrastructure/observability"
	"github.com/zatekoja/doseordering/internal/server"
	"github.com/zatekoja/doseordering/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.GetLogger().Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env)
	logger := observability.GetLogger()

	// Wait for interrupt signal for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
