package config

import (
	"net/url"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"gofarma/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	API    APIConfig
	Server ServerConfig
	Report ReportConfig
	Dev    DevConfig
}

// APIConfig holds settings for the remote pharmacy REST API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is requests per minute; 0 disables limiting.
	RateLimit int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// ReportConfig holds report formatting settings
type ReportConfig struct {
	CurrencyPrefix  string
	TimestampLayout string
	Location        *time.Location
	ShowTotals      bool
	// CatalogFile overrides the embedded report catalog when set.
	CatalogFile string
}

// DevConfig holds settings for the fake API used in development
type DevConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	apiConfig, err := loadAPIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load API configuration")
	}
	config.API = *apiConfig

	config.Server = *loadServerConfig()

	reportConfig, err := loadReportConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load report configuration")
	}
	config.Report = *reportConfig

	config.Dev = *loadDevConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAPIConfig() (*APIConfig, error) {
	base := getEnvOrDefault("API_URL", "http://localhost:8080/api")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.ConfigInvalid("API_URL must be an absolute http(s) URL")
	}

	return &APIConfig{
		BaseURL:   base,
		Timeout:   getEnvDurationOrDefault("API_TIMEOUT", 10*time.Second),
		RateLimit: getEnvIntOrDefault("API_RATE_LIMIT", 0),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port: getEnvOrDefault("PORT", "3000"),
	}
}

func loadReportConfig() (*ReportConfig, error) {
	tz := getEnvOrDefault("REPORT_TIMEZONE", "America/Lima")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.Wrapf(errors.ConfigInvalid("REPORT_TIMEZONE is not a known time zone"), "timezone %q", tz)
	}

	return &ReportConfig{
		CurrencyPrefix:  getEnvRawOrDefault("CURRENCY_PREFIX", "S/. "),
		TimestampLayout: getEnvOrDefault("REPORT_TIMESTAMP_LAYOUT", "02/01/2006, 15:04:05"),
		Location:        loc,
		ShowTotals:      getEnvBoolOrDefault("REPORT_SHOW_TOTALS", false),
		CatalogFile:     getEnvOrDefault("CATALOG_FILE", ""),
	}, nil
}

func loadDevConfig() *DevConfig {
	return &DevConfig{
		Port: getEnvOrDefault("DEV_API_PORT", "8080"),
	}
}

func validateConfig(config *Config) error {
	if config.API.Timeout <= 0 {
		return errors.ConfigInvalid("API_TIMEOUT must be positive")
	}
	if config.API.RateLimit < 0 {
		return errors.ConfigInvalid("API_RATE_LIMIT must not be negative")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRawOrDefault keeps an explicitly empty value, so CURRENCY_PREFIX= disables the prefix.
func getEnvRawOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
