package config

import (
	"os"
	"strconv"

	"schedparse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig   `validate:"required"`
	Parser   ParserConfig   `validate:"required"`
	Enhancer EnhancerConfig
	Upload   UploadConfig `validate:"required"`
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case parse runs are not persisted.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string `validate:"required"`
}

// ParserConfig holds extraction pipeline tuning
type ParserConfig struct {
	HeaderScanRows     int
	LayoutSampleRows   int
	DetailKeyThreshold int
	FuzzyThreshold     float64
	DisableFuzzy       bool
}

// Enhancer modes. Fallback only sends sparse products to the LLM;
// refine sends every product.
const (
	EnhancerModeFallback = "fallback"
	EnhancerModeRefine   = "refine"
)

// EnhancerConfig holds LLM gap-fill settings
type EnhancerConfig struct {
	Enabled          bool
	Mode             string // "fallback" or "refine"
	MinMissingFields int
	BatchSize        int
	APIKey           string
	Model            string
	BaseURL          string
}

// UploadConfig holds file upload limits
type UploadConfig struct {
	MaxFileBytes int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Parser: ParserConfig{
			HeaderScanRows:     getEnvIntOrDefault("PARSER_HEADER_SCAN_ROWS", 50),
			LayoutSampleRows:   getEnvIntOrDefault("PARSER_LAYOUT_SAMPLE_ROWS", 50),
			DetailKeyThreshold: getEnvIntOrDefault("PARSER_DETAIL_KEY_THRESHOLD", 5),
			FuzzyThreshold:     getEnvFloatOrDefault("PARSER_FUZZY_THRESHOLD", 0.75),
			DisableFuzzy:       getEnvBoolOrDefault("PARSER_DISABLE_FUZZY", false),
		},
		Enhancer: EnhancerConfig{
			Enabled:          getEnvBoolOrDefault("ENHANCER_ENABLED", false),
			Mode:             getEnvOrDefault("ENHANCER_MODE", EnhancerModeFallback),
			MinMissingFields: getEnvIntOrDefault("ENHANCER_MIN_MISSING_FIELDS", 3),
			BatchSize:        getEnvIntOrDefault("ENHANCER_BATCH_SIZE", 5),
			APIKey:           getEnvOrDefault("ENHANCER_API_KEY", ""),
			Model:            getEnvOrDefault("ENHANCER_MODEL", ""),
			BaseURL:          getEnvOrDefault("ENHANCER_BASE_URL", ""),
		},
		Upload: UploadConfig{
			MaxFileBytes: getEnvInt64OrDefault("UPLOAD_MAX_FILE_BYTES", 50<<20),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Parser.FuzzyThreshold <= 0 || config.Parser.FuzzyThreshold > 1 {
		return errors.ConfigInvalid("PARSER_FUZZY_THRESHOLD must be in (0, 1]")
	}
	if config.Enhancer.Mode != EnhancerModeFallback && config.Enhancer.Mode != EnhancerModeRefine {
		return errors.ConfigInvalid("ENHANCER_MODE must be fallback or refine")
	}
	if config.Enhancer.Enabled && config.Enhancer.APIKey == "" {
		return errors.ConfigInvalid("ENHANCER_API_KEY is required when the enhancer is enabled")
	}
	if config.Upload.MaxFileBytes <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_FILE_BYTES must be positive")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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
