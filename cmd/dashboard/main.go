// Command dashboard serves the stock price dashboard: the HTML page, the JSON API
// under /api and the /ws WebSocket.
package main

import (
	"context"
	"log/slog"
	"os"

	"stockdash/internal/app"
	"stockdash/internal/config"
	"stockdash/internal/infrastructure"
	"stockdash/pkg/contracts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	logger.Info("starting stock dashboard",
		slog.String("version", contracts.Version),
		slog.String("dataset", cfg.Dataset.Path),
		slog.String("addr", cfg.Server.Addr()))

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		logger.Error("failed to initialize telemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The page and the API stay up without data; pipeline calls answer 503.
	table, err := app.LoadDataset(cfg, logger)
	if err != nil {
		logger.Error("dataset unavailable", slog.String("error", err.Error()))
	}

	application, err := app.NewApplication(cfg, table, logger, providers)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		logger.Error("application stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("stock dashboard stopped")
}
