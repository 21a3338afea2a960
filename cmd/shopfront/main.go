package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront/internal/api"
	"shopfront/internal/auth"
	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/handler"
	"shopfront/internal/metrics"
	"shopfront/internal/router"
	"shopfront/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopfront view facade")

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Token store (the only state that survives a restart)
	tokens, err := auth.NewStore(cfg.Auth.TokenFile, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize token store: %w", err)
	}

	// Backend API client and query dispatcher
	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, tokens, m, logger)
	dispatcher := catalog.NewDispatcher(client, logger)

	// State stores
	catalogStore := store.NewCatalogStore(dispatcher, cfg.Catalog.DefaultPageSize, logger)
	orderStore := store.NewOrderStore(dispatcher, cfg.Catalog.DefaultPageSize, logger)

	// HTTP handlers and router
	catalogHandler := handler.NewCatalogHandler(catalogStore, logger)
	orderHandler := handler.NewOrderHandler(orderStore, logger)
	mux := router.New(catalogHandler, orderHandler, registry, m, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("backend", cfg.Backend.BaseURL).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
