package menu

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigJSON = `{
  "restaurantInfo": {"name": "Test Diner", "location": "Nowhere"},
  "categories": [
    {
      "id": "mains",
      "name": "Mains",
      "items": [
        {"id": "burger", "name": "Burger", "price": 5.5, "keywords": ["burger"]}
      ]
    }
  ],
  "prompts": {"welcomeMessage": "Hi", "suggestMessage": "Try the burger."}
}`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restaurant.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileLoader_Load(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	cfg, err := loader.Load(context.Background(), writeTempConfig(t, validConfigJSON))

	require.NoError(t, err)
	assert.Equal(t, "Test Diner", cfg.RestaurantInfo.Name)
	require.Len(t, cfg.Categories, 1)
	assert.Equal(t, "burger", cfg.Categories[0].Items[0].ID)
}

func TestFileLoader_Load_MissingFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	cfg, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFileLoader_Load_InvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		errorMsg string
	}{
		{
			name:     "Malformed JSON",
			content:  `{"restaurantInfo":`,
			errorMsg: "failed to parse",
		},
		{
			name:     "Missing restaurant name",
			content:  `{"restaurantInfo": {}, "categories": [{"id": "c", "name": "C", "items": [{"id": "x", "name": "X", "price": 1}]}]}`,
			errorMsg: "restaurant name is required",
		},
		{
			name:     "No categories",
			content:  `{"restaurantInfo": {"name": "T"}, "categories": []}`,
			errorMsg: "no menu categories",
		},
		{
			name:     "Empty category",
			content:  `{"restaurantInfo": {"name": "T"}, "categories": [{"id": "c", "name": "C", "items": []}]}`,
			errorMsg: "has no items",
		},
		{
			name:     "Item without id",
			content:  `{"restaurantInfo": {"name": "T"}, "categories": [{"id": "c", "name": "C", "items": [{"name": "X", "price": 1}]}]}`,
			errorMsg: "without an id",
		},
		{
			name:     "Negative price",
			content:  `{"restaurantInfo": {"name": "T"}, "categories": [{"id": "c", "name": "C", "items": [{"id": "x", "name": "X", "price": -1}]}]}`,
			errorMsg: "negative price",
		},
	}

	loader := NewFileLoader(zerolog.Nop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loader.Load(context.Background(), writeTempConfig(t, tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
			assert.Nil(t, cfg)
		})
	}
}

func TestFallbackLoader_PrimaryFails(t *testing.T) {
	fileLoader := NewFileLoader(zerolog.Nop())
	missing := filepath.Join(t.TempDir(), "missing.json")
	valid := writeTempConfig(t, validConfigJSON)

	chain := NewFallbackLoader(fileLoader, missing, fileLoader, valid, zerolog.Nop())

	cfg, err := chain.Load(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "Test Diner", cfg.RestaurantInfo.Name)
}

func TestFallbackLoader_AllFail(t *testing.T) {
	fileLoader := NewFileLoader(zerolog.Nop())
	missing := filepath.Join(t.TempDir(), "missing.json")

	chain := NewFallbackLoader(fileLoader, missing, fileLoader, missing, zerolog.Nop())

	cfg, err := chain.Load(context.Background(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all restaurant config sources failed")
	assert.Nil(t, cfg)
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()

	require.NoError(t, err)
	assert.Equal(t, "Woody's Burger, Chicken & Ribs", cfg.RestaurantInfo.Name)
	require.NotEmpty(t, cfg.Categories)

	// The embedded config must produce a valid catalog.
	catalog, err := New(cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, catalog.Items())
	assert.NotEmpty(t, catalog.AllAllergens())
}
