package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string           `mapstructure:"environment"`
	LogLevel    string           `mapstructure:"log_level"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Redis       RedisConfig      `mapstructure:"redis"`
	Model       ModelConfig      `mapstructure:"model"`
	Similarity  SimilarityConfig `mapstructure:"similarity"`
	Cache       CacheConfig      `mapstructure:"cache"`
	Telemetry   TelemetryConfig  `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ModelConfig struct {
	// Path to the persisted forecast model weights. The baseline forecaster
	// is used when the file is missing.
	Path string `mapstructure:"path"`
}

type SimilarityConfig struct {
	Neighbors int `mapstructure:"neighbors"`
}

type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	TTL     string `mapstructure:"ttl"`
}

type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// CacheTTL parses the configured cache TTL.
func (c CacheConfig) CacheTTL() (time.Duration, error) {
	return time.ParseDuration(c.TTL)
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	// Environment variables override file values, e.g. DATABASE_HOST.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	if config.Similarity.Neighbors <= 0 {
		return nil, fmt.Errorf("similarity.neighbors must be positive, got %d", config.Similarity.Neighbors)
	}
	if config.Cache.Enabled {
		if _, err := config.Cache.CacheTTL(); err != nil {
			return nil, fmt.Errorf("invalid cache TTL: %w", err)
		}
	}

	return &config, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "store_recommendations")
	viper.SetDefault("database.sslmode", "disable")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Forecast model
	viper.SetDefault("model.path", "models/forecast_model.json")

	// Similarity search
	viper.SetDefault("similarity.neighbors", 5)

	// Recommendation response cache
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.ttl", "5m")

	// Telemetry
	viper.SetDefault("telemetry.enabled", false)
}
