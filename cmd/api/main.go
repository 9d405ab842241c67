package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"sophia-orders/internal/assistant"
	"sophia-orders/internal/config"
	"sophia-orders/internal/dispatch"
	"sophia-orders/internal/handler"
	"sophia-orders/internal/menu"
	"sophia-orders/internal/model"
	"sophia-orders/internal/router"
	"sophia-orders/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environment variables take precedence.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting sophia-orders API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the restaurant config and build the menu catalog
	restaurantCfg, err := loadRestaurantConfig(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load restaurant config: %w", err)
	}

	catalog, err := menu.New(restaurantCfg)
	if err != nil {
		return fmt.Errorf("failed to build menu catalog: %w", err)
	}
	logger.Info().
		Str("restaurant", restaurantCfg.RestaurantInfo.Name).
		Int("items", len(catalog.Items())).
		Msg("menu catalog ready")

	// Initialize session store and function dispatcher
	store := session.NewMemoryStore(logger)
	dispatcher := dispatch.New(catalog, logger)

	// Pick the responder: LLM when a key is configured, keyword fallback
	// otherwise.
	aiEnabled := cfg.OpenAI.APIKey != ""
	var responder assistant.Responder
	if aiEnabled {
		responder = assistant.NewOpenAIResponder(assistant.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
			Timeout: cfg.OpenAI.OpenAITimeout(),
		}, catalog, dispatcher, logger)
		logger.Info().Str("model", cfg.OpenAI.Model).Msg("AI mode enabled")
	} else {
		responder = assistant.NewKeywordResponder(catalog, dispatcher, logger)
		logger.Info().Msg("AI mode disabled, using keyword matching")
	}

	// Initialize HTTP handlers
	chatHandler := handler.NewChatHandler(store, responder, catalog, logger)
	configHandler := handler.NewConfigHandler(catalog, logger)
	healthHandler := handler.NewHealthHandler(aiEnabled, logger)

	// Initialize router
	mux := router.New(chatHandler, configHandler, healthHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
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

// loadRestaurantConfig resolves the restaurant config through the configured
// sources: S3 when enabled, then a local file, then the embedded default.
func loadRestaurantConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*model.RestaurantConfig, error) {
	fileLoader := menu.NewFileLoader(logger)

	if cfg.Menu.S3.Enabled {
		s3Loader, err := menu.NewS3Loader(ctx, cfg.Menu.S3.Bucket, cfg.Menu.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 menu loader, falling back to local sources")
		} else if cfg.Menu.Path != "" {
			chain := menu.NewFallbackLoader(s3Loader, cfg.Menu.S3.Key, fileLoader, cfg.Menu.Path, logger)
			if restaurantCfg, err := chain.Load(ctx, ""); err == nil {
				return restaurantCfg, nil
			}
			logger.Warn().Msg("all external menu sources failed, using embedded config")
			return menu.DefaultConfig()
		} else {
			if restaurantCfg, err := s3Loader.Load(ctx, cfg.Menu.S3.Key); err == nil {
				return restaurantCfg, nil
			}
			logger.Warn().Msg("S3 menu source failed, using embedded config")
			return menu.DefaultConfig()
		}
	}

	if cfg.Menu.Path != "" {
		restaurantCfg, err := fileLoader.Load(ctx, cfg.Menu.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("local menu source failed, using embedded config")
			return menu.DefaultConfig()
		}
		return restaurantCfg, nil
	}

	logger.Info().Msg("no external menu source configured, using embedded config")
	return menu.DefaultConfig()
}
