package menu

import (
	"fmt"

	_ "embed"

	"sophia-orders/internal/model"
)

//go:embed woodys.json
var defaultConfigJSON []byte

// DefaultConfig returns the restaurant config bundled with the binary, used
// when no external config source is available.
func DefaultConfig() (*model.RestaurantConfig, error) {
	cfg, err := parseConfig(defaultConfigJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded restaurant config is invalid: %w", err)
	}
	return cfg, nil
}
