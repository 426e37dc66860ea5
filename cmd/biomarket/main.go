// cmd/biomarket/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ammerola/biomarket-be/internal/adapters/flatfile"
	"github.com/ammerola/biomarket-be/internal/core/services"
	"github.com/ammerola/biomarket-be/internal/export"
	"github.com/ammerola/biomarket-be/internal/pkg/config"
	"github.com/ammerola/biomarket-be/internal/pkg/logger"
	"github.com/ammerola/biomarket-be/internal/ui"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Initialize structured logger
	slogger := logger.SetupLogger("info", "text")

	slogger.Info("starting biomarket inventory system",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	// Load configuration
	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("data_dir", cfg.Storage.DataDir),
		slog.String("sales_file", cfg.Storage.LedgerFile),
	)

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		slogger.Error("failed to prepare data directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories, services and the menu
	productRepo := flatfile.NewProductRepository(cfg.Storage.DataDir, cfg.Storage.LedgerFile, slogger.Logger)
	saleRepo := flatfile.NewSaleRepository(cfg.Storage.DataDir, cfg.Storage.LedgerFile, slogger.Logger)
	ledger := services.NewSalesLedger(saleRepo, slogger.Logger)
	svc := services.NewInventoryService(productRepo, ledger, slogger.Logger)
	reports := export.NewReportWriter(slogger.Logger)
	menu := ui.NewMenu(svc, reports, cfg.Storage.ExportDir, os.Stdin, os.Stdout, slogger.Logger)

	// The menu runs until exit, end of input or an interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := menu.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slogger.Error("menu loop failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("biomarket stopped")
}
