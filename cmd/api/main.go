package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luxe-storefront/internal/checkout"
	"luxe-storefront/internal/config"
	"luxe-storefront/internal/handler"
	"luxe-storefront/internal/media"
	"luxe-storefront/internal/router"
	"luxe-storefront/internal/storage"
	"luxe-storefront/internal/store"
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
	logger.Info().Msg("starting luxe-storefront API server")

	if cfg.Auth.DemoMode {
		logger.Warn().Msg("demo mode enabled, admin credentials are the well-known fixture pair")
	}

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the document store backend
	var kv storage.KV
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		kv = storage.NewMemory(cfg.Storage.QuotaBytes, logger)
		logger.Info().Int("quota_bytes", cfg.Storage.QuotaBytes).Msg("using in-memory document store")
	case config.BackendPostgres:
		pool, err := storage.NewPool(ctx, cfg.Storage.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		kv, err = storage.NewPostgres(ctx, pool, cfg.Storage.MaxDocBytes, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize document store: %w", err)
		}
	}

	// Initialize entity stores
	catalogStore := store.NewCatalogStore(kv, logger)
	cartStore := store.NewCartStore(kv, logger)
	couponStore := store.NewCouponStore(kv, logger)
	heroStore := store.NewHeroStore(kv, logger)
	sessionStore := store.NewSessionStore(kv, cfg.Auth, logger)

	// Initialize media pipeline with S3 offload and embedded fallback
	mediaValidator := media.NewValidator(cfg.Media, logger)

	var assets media.AssetStore
	if cfg.S3.Enabled {
		s3Assets, err := media.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 asset store, falling back to embedded data URLs")
			assets = media.NewEmbedStore()
		} else {
			assets = s3Assets
		}
	} else {
		assets = media.NewEmbedStore()
		logger.Info().Msg("embedding media as data URLs (S3 disabled)")
	}

	// Initialize checkout with the stub payment gateway
	gateway := checkout.NewStubGateway(logger)
	checkoutService := checkout.NewService(cartStore, gateway, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(catalogStore, mediaValidator, assets, logger)
	cartHandler := handler.NewCartHandler(cartStore, logger)
	couponHandler := handler.NewCouponHandler(couponStore, logger)
	heroHandler := handler.NewHeroHandler(heroStore, mediaValidator, assets, logger)
	authHandler := handler.NewAuthHandler(sessionStore, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)

	// Initialize router
	mux := router.New(
		productHandler,
		cartHandler,
		couponHandler,
		heroHandler,
		authHandler,
		checkoutHandler,
		sessionStore,
		logger,
	)

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

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
