package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"sophia-orders/internal/model"
)

// Loader reads a restaurant config from an external resource. The source is
// loader-specific: a file path for the file loader, an object key for the S3
// loader.
type Loader interface {
	Load(ctx context.Context, source string) (*model.RestaurantConfig, error)
}

// fileLoader implements Loader for reading restaurant config files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based restaurant config loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "menu-loader").Logger(),
	}
}

// Load reads and parses a restaurant config JSON file.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*model.RestaurantConfig, error) {
	l.logger.Info().Str("file", filePath).Msg("loading restaurant config file")

	data, err := os.ReadFile(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read restaurant config file")
		return nil, fmt.Errorf("failed to read restaurant config file %s: %w", filePath, err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to parse restaurant config file")
		return nil, fmt.Errorf("failed to parse restaurant config file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Str("restaurant", cfg.RestaurantInfo.Name).
		Int("categories", len(cfg.Categories)).
		Msg("restaurant config loaded successfully")

	return cfg, nil
}

// fallbackLoader tries a primary loader first and falls back to a secondary
// one when the primary fails.
type fallbackLoader struct {
	primary         Loader
	primarySource   string
	secondary       Loader
	secondarySource string
	logger          zerolog.Logger
}

// NewFallbackLoader creates a loader that tries primary first, then secondary.
func NewFallbackLoader(primary Loader, primarySource string, secondary Loader, secondarySource string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		primary:         primary,
		primarySource:   primarySource,
		secondary:       secondary,
		secondarySource: secondarySource,
		logger:          logger.With().Str("component", "menu-fallback-loader").Logger(),
	}
}

// Load ignores the passed source and uses the configured sources so the
// fallback chain stays self-contained.
func (l *fallbackLoader) Load(ctx context.Context, _ string) (*model.RestaurantConfig, error) {
	cfg, err := l.primary.Load(ctx, l.primarySource)
	if err == nil {
		return cfg, nil
	}

	l.logger.Warn().
		Err(err).
		Str("source", l.primarySource).
		Msg("primary restaurant config source failed, falling back")

	cfg, err = l.secondary.Load(ctx, l.secondarySource)
	if err != nil {
		return nil, fmt.Errorf("all restaurant config sources failed: %w", err)
	}
	return cfg, nil
}

// parseConfig decodes and sanity-checks a restaurant config document.
func parseConfig(data []byte) (*model.RestaurantConfig, error) {
	var cfg model.RestaurantConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.RestaurantInfo.Name == "" {
		return nil, fmt.Errorf("restaurant name is required")
	}
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("restaurant config has no menu categories")
	}
	for _, cat := range cfg.Categories {
		if len(cat.Items) == 0 {
			return nil, fmt.Errorf("menu category %q has no items", cat.ID)
		}
		for _, item := range cat.Items {
			if item.ID == "" {
				return nil, fmt.Errorf("menu category %q contains an item without an id", cat.ID)
			}
			if item.Price < 0 {
				return nil, fmt.Errorf("menu item %q has a negative price", item.ID)
			}
		}
	}

	return &cfg, nil
}
