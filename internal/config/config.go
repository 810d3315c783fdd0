package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	Auth           AuthConfig
	SeedDemoData   bool   // SEED_DEMO_DATA: load the demo catalog and users on boot
	WhatsAppNumber string // WHATSAPP_NUMBER: initial value for the settings record
}

// AuthConfig covers the two inbound trust paths: identity-provider session
// tokens and the admin service key used by back-office tooling.
type AuthConfig struct {
	JWTSecret      string // JWT_SECRET: HS256 secret shared with the identity provider
	ServiceKeyHash string // SERVICE_KEY_HASH: bcrypt hash of the admin service key (cmd/genkey)
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SEED_DEMO_DATA", "true")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Auth: AuthConfig{
			JWTSecret:      strings.TrimSpace(getEnvOrViper("JWT_SECRET", "")),
			ServiceKeyHash: strings.TrimSpace(getEnvOrViper("SERVICE_KEY_HASH", "")),
		},
		SeedDemoData:   getEnvOrViper("SEED_DEMO_DATA", "true") == "true",
		WhatsAppNumber: strings.TrimSpace(getEnvOrViper("WHATSAPP_NUMBER", "")),
	}

	// Validate required fields
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
