// internal/pkg/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Storage StorageConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
}

// StorageConfig holds flat-file storage configuration
type StorageConfig struct {
	DataDir    string // directory holding one CSV table per warehouse
	LedgerFile string // sales ledger file name within DataDir
	ExportDir  string // destination for exported report workbooks
}

// Load loads configuration from environment variables
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file in development
	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	// Initialize viper
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetTypeByDefaultValue(true)

	setDefaults()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "biomarket"),
			Environment: env,
			Version:     getEnv("APP_VERSION", "dev"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
			Debug:       getBoolEnv("APP_DEBUG", env == "development"),
		},
		Storage: StorageConfig{
			DataDir:    getEnv("DATA_DIR", "."),
			LedgerFile: getEnv("SALES_FILE", "sales.csv"),
			ExportDir:  getEnv("EXPORT_DIR", "."),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Storage.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.Storage.LedgerFile == "" {
		return fmt.Errorf("sales ledger file name is required")
	}
	if !strings.HasSuffix(c.Storage.LedgerFile, ".csv") {
		return fmt.Errorf("sales ledger file must be a .csv file, got %q", c.Storage.LedgerFile)
	}
	if strings.ContainsRune(c.Storage.LedgerFile, os.PathSeparator) {
		return fmt.Errorf("sales ledger file must be a bare file name, got %q", c.Storage.LedgerFile)
	}
	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// Helper functions

func setDefaults() {
	viper.SetDefault("app.name", "biomarket")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}
