package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	OpenAI OpenAIConfig
	Menu   MenuConfig
	Auth   AuthConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// OpenAIConfig holds the chat-completions provider configuration. An empty
// API key switches the service to the keyword-matching fallback.
type OpenAIConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	TimeoutSeconds int
}

// MenuConfig holds the restaurant config source. When Path is empty and S3 is
// disabled, the embedded default config is used.
type MenuConfig struct {
	Path string
	S3   S3Config
}

// S3Config holds AWS S3 configuration for hosted restaurant config files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Key     string // Object key within the bucket (e.g., "restaurants/woodys.json")
}

// AuthConfig holds authentication configuration. An empty API key leaves the
// endpoints public.
type AuthConfig struct {
	APIKey string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 3000),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
			BaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			TimeoutSeconds: getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 30),
		},
		Menu: MenuConfig{
			Path: getEnv("MENU_CONFIG_PATH", ""),
			S3: S3Config{
				Enabled: getEnvAsBool("MENU_S3_ENABLED", false),
				Bucket:  getEnv("MENU_S3_BUCKET", ""),
				Region:  getEnv("MENU_S3_REGION", "us-east-1"),
				Key:     getEnv("MENU_S3_KEY", "restaurants/woodys.json"),
			},
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.OpenAI.APIKey != "" {
		if c.OpenAI.Model == "" {
			return fmt.Errorf("OpenAI model is required when an API key is set")
		}
		if c.OpenAI.BaseURL == "" {
			return fmt.Errorf("OpenAI base URL is required when an API key is set")
		}
		if c.OpenAI.TimeoutSeconds < 1 {
			return fmt.Errorf("OpenAI timeout must be at least 1 second")
		}
	}

	if c.Menu.S3.Enabled {
		if c.Menu.S3.Bucket == "" {
			return fmt.Errorf("menu S3 bucket is required when menu S3 is enabled")
		}
		if c.Menu.S3.Region == "" {
			return fmt.Errorf("menu S3 region is required when menu S3 is enabled")
		}
		if c.Menu.S3.Key == "" {
			return fmt.Errorf("menu S3 key is required when menu S3 is enabled")
		}
	}

	return nil
}

// OpenAITimeout returns the provider timeout as a duration.
func (c *OpenAIConfig) OpenAITimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
