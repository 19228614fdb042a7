package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Cleaning  CleaningConfig
	Ranking   RankingConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Feedback  FeedbackConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatasetConfig holds the raw dataset source configuration
type DatasetConfig struct {
	Path             string `mapstructure:"path"`
	PrimaryEncoding  string `mapstructure:"primary_encoding"`
	FallbackEncoding string `mapstructure:"fallback_encoding"`
}

// CleaningConfig holds data-cleaning thresholds and defaults
type CleaningConfig struct {
	MaxMissingRatio float64 `mapstructure:"max_missing_ratio"`
	DefaultRating   float64 `mapstructure:"default_rating"`
	FallbackCost    float64 `mapstructure:"fallback_cost"`
}

// RankingConfig holds recommendation-engine tuning
type RankingConfig struct {
	VoteCap     int `mapstructure:"vote_cap"`
	DefaultTopN int `mapstructure:"default_top_n"`
}

// SessionConfig holds filtered-set store configuration
type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
	Burst int `mapstructure:"burst"`
}

// FeedbackConfig holds feedback persistence configuration
type FeedbackConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/platefinder/")

	// Environment variable settings
	v.SetEnvPrefix("PLATEFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Dataset defaults
	v.SetDefault("dataset.path", "zomato.csv")
	v.SetDefault("dataset.primary_encoding", "utf-8")
	v.SetDefault("dataset.fallback_encoding", "latin1")

	// Cleaning defaults
	v.SetDefault("cleaning.max_missing_ratio", 0.30)
	v.SetDefault("cleaning.default_rating", 3.0)
	v.SetDefault("cleaning.fallback_cost", 500.0)

	// Ranking defaults
	v.SetDefault("ranking.vote_cap", 1000)
	v.SetDefault("ranking.default_top_n", 10)

	// Session defaults
	v.SetDefault("session.ttl", "30m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	// Feedback defaults
	v.SetDefault("feedback.enabled", true)
	v.SetDefault("feedback.path", "feedback.db")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Dataset.Path == "" {
		return fmt.Errorf("dataset path is required (set PLATEFINDER_DATASET_PATH)")
	}

	if config.Cleaning.MaxMissingRatio <= 0 || config.Cleaning.MaxMissingRatio >= 1 {
		return fmt.Errorf("cleaning max_missing_ratio must be in (0,1), got: %v", config.Cleaning.MaxMissingRatio)
	}

	if config.Ranking.VoteCap <= 0 {
		return fmt.Errorf("ranking vote_cap must be positive, got: %d", config.Ranking.VoteCap)
	}

	if config.Ranking.DefaultTopN <= 0 {
		return fmt.Errorf("ranking default_top_n must be positive, got: %d", config.Ranking.DefaultTopN)
	}

	if config.Feedback.Enabled && config.Feedback.Path == "" {
		return fmt.Errorf("feedback path is required when feedback is enabled")
	}

	return nil
}
