package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/unidelivery/internal/shell"
	"github.com/JaimeStill/unidelivery/internal/tables"
	"github.com/JaimeStill/unidelivery/pkg/middleware"
)

// App environment variable names.
const (
	EnvAppRole     = "APP_ROLE"
	EnvAppFallback = "APP_FALLBACK"
	EnvAppBasePath = "APP_BASE_PATH"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "APP_CORS_ENABLED",
	Origins:          "APP_CORS_ORIGINS",
	AllowedMethods:   "APP_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "APP_CORS_ALLOWED_HEADERS",
	AllowCredentials: "APP_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "APP_CORS_MAX_AGE",
}

// AppConfig selects the route table served by the application module and
// where it is mounted.
type AppConfig struct {
	Role     tables.Role           `toml:"role"`
	Fallback shell.Policy          `toml:"fallback"`
	BasePath string                `toml:"base_path"`
	CORS     middleware.CORSConfig `toml:"cors"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *AppConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *AppConfig) Merge(overlay *AppConfig) {
	if overlay.Role != "" {
		c.Role = overlay.Role
	}
	if overlay.Fallback != "" {
		c.Fallback = overlay.Fallback
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
}

func (c *AppConfig) loadDefaults() {
	if c.Role == "" {
		c.Role = tables.RoleUser
	}
	if c.Fallback == "" {
		c.Fallback = shell.PolicyNotFound
	}
	if c.BasePath == "" {
		c.BasePath = "/app"
	}
}

func (c *AppConfig) loadEnv() {
	if v := os.Getenv(EnvAppRole); v != "" {
		c.Role = tables.Role(v)
	}
	if v := os.Getenv(EnvAppFallback); v != "" {
		c.Fallback = shell.Policy(v)
	}
	if v := os.Getenv(EnvAppBasePath); v != "" {
		c.BasePath = v
	}
}

func (c *AppConfig) validate() error {
	if err := c.Role.Validate(); err != nil {
		return err
	}
	if err := c.Fallback.Validate(); err != nil {
		return err
	}
	if !strings.HasPrefix(c.BasePath, "/") || len(c.BasePath) < 2 || strings.Contains(c.BasePath[1:], "/") {
		return fmt.Errorf("invalid base_path: %q (must be a single segment such as /app)", c.BasePath)
	}
	return nil
}
