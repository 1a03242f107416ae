package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentlify/internal/catalog"
	"rentlify/internal/config"
	"rentlify/internal/handler"
	"rentlify/internal/orderapi"
	"rentlify/internal/router"
	"rentlify/internal/service"
	"rentlify/internal/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
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
	logger.Info().Str("store", cfg.Store.Backend).Msg("starting rentlify API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the product catalogue, S3 first when enabled
	products, err := loadCatalog(ctx, cfg, logger)
	if err != nil && cfg.Store.Backend != config.StorePostgres {
		return fmt.Errorf("failed to load catalogue: %w", err)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("catalogue not loaded, serving products already in the database")
	}

	// Initialize session storage and the product source
	backend, err := openBackend(ctx, cfg, products, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	registry := session.NewRegistry(backend.Store)

	// Initialize the Order API client
	orders := orderapi.New(
		cfg.OrderAPI.BaseURL,
		orderapi.NewHTTPClient(cfg.OrderAPI.Timeout()),
		registry,
		logger,
	).WithBreaker(uint32(cfg.OrderAPI.BreakerFailures), cfg.OrderAPI.BreakerCooldown())

	// Initialize services
	carts := service.NewCarts(registry, logger)
	productService := service.NewProductService(backend.Products, logger)
	cartService := service.NewCartService(carts, backend.Products, cfg.Pricing.DeliveryCharge, logger)
	sessionService := service.NewSessionService(registry, orders, logger)
	checkoutService := service.NewCheckoutService(carts, registry, backend.Products, orders, logger)

	// Initialize metrics
	metricsRegistry := prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize router
	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Session:  handler.NewSessionHandler(sessionService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
	}, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Registry:       metricsRegistry,
	}, logger)

	// Create HTTP server. WriteTimeout leaves room for a slow Order API call.
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.OrderAPI.Timeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
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

// loadCatalog reads the catalogue through S3 with a local fallback, or from
// the local file system only when S3 is disabled.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*catalog.Set, error) {
	fileLoader := catalog.NewFileLoader(logger)
	var loader catalog.Loader = fileLoader

	if cfg.S3.Enabled {
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
		}
	} else {
		logger.Info().Msg("using local file system for the catalogue (S3 disabled)")
	}

	return loader.Load(ctx, cfg.Catalog.Path)
}
