package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/careconnect/internal/app/notifier"
	"github.com/magabrotheeeer/careconnect/internal/config"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.SetupLogger(cfg.Env, os.Stdout)

	logger.Info("starting notifier", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := notifier.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize notifier", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("notifier stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("notifier stopped gracefully")
}
