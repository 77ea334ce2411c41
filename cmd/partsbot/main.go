package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/garageml/partsbot/internal/catalog"
	"github.com/garageml/partsbot/internal/config"
	"github.com/garageml/partsbot/internal/inventory"
	"github.com/garageml/partsbot/internal/orchestrator"
	"github.com/garageml/partsbot/internal/reasoner/gemini"
	"github.com/garageml/partsbot/internal/server"
	"github.com/garageml/partsbot/internal/storage/sqlite"
	"github.com/garageml/partsbot/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize OpenTelemetry
	shutdown, err := telemetry.Init("partsbot", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	// Open the catalog store and seed the demo inventory on first run.
	store, err := sqlite.New(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to open catalog store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.SeedIfEmpty(ctx, catalog.Demo()); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	products, err := store.ListProducts(ctx)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	logger.Info("catalog loaded", slog.Int("products", len(products)))

	var engine inventory.Engine
	switch cfg.Inventory.Mode {
	case config.ModeRemote:
		engine = inventory.NewRemote(cfg.Inventory.RemoteURL)
		logger.Info("using remote inventory", slog.String("url", cfg.Inventory.RemoteURL))
	default:
		engine = inventory.NewLocal(products,
			inventory.WithMinLatency(time.Duration(cfg.Inventory.LocalDelayMS)*time.Millisecond))
		logger.Info("using local inventory")
	}

	reasoner, err := gemini.New(gemini.Config{
		APIKey:             cfg.Gemini.APIKey,
		Model:              cfg.Gemini.Model,
		HistoryWindow:      cfg.Gemini.HistoryWindow,
		HistoryTokenBudget: cfg.Gemini.HistoryTokenBudget,
		PreviewCount:       cfg.Gemini.PreviewCount,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create reasoning client: %v", err)
	}

	pipeline := orchestrator.New(orchestrator.Config{
		Semantic:       cfg.Gemini.Semantic,
		WhatsAppNumber: cfg.Store.WhatsAppNumber,
		Greeting:       cfg.Store.Greeting,
	}, reasoner, engine, products, logger)

	srv := server.New(cfg.Server.Port, logger, pipeline)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("partsbot ready",
		slog.String("store", cfg.Store.Name),
		slog.String("inventory_mode", cfg.Inventory.Mode),
		slog.Bool("reasoner_enabled", reasoner.Enabled()),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-sigChan:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}
}

// Compile-time check that the orchestrator satisfies the server's
// inbound contract.
var _ server.Pipeline = (*orchestrator.Orchestrator)(nil)
