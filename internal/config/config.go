package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server     Server     `mapstructure:"server"`
	MarketData MarketData `mapstructure:"marketdata"`
	Database   Database   `mapstructure:"database"`
	Auth       Auth       `mapstructure:"auth"`
	Logger     Logger     `mapstructure:"logger"`
}

// Server holds the configuration for the HTTP API.
type Server struct {
	Port            int           `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// RateLimit throttles inbound API requests (requests per second).
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// MarketData holds the configuration for the Financial Modeling Prep API.
type MarketData struct {
	BaseURL string        `mapstructure:"base_url"`
	ApiKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Database holds the configuration for the database.
type Database struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
	DSN    string `mapstructure:"dsn"`
}

// Auth holds the configuration used to verify access tokens issued by the auth provider.
type Auth struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

var defaults = map[string]any{
	"server.port":             8080,
	"server.cors_origins":     []string{"http://localhost:3000"},
	"server.shutdown_timeout": 10 * time.Second,
	"server.rate_limit":       50,
	"server.rate_limit_burst": 20,

	"marketdata.base_url": "https://financialmodelingprep.com/api/v3",
	"marketdata.api_key":  "",
	"marketdata.timeout":  10 * time.Second,

	"database.driver": "sqlite",
	"database.dsn":    "watchlist.db",

	"auth.jwt_secret": "",
	"auth.token_ttl":  time.Hour,

	"logger.level":        "info",
	"logger.format":       "console",
	"logger.file":         "",
	"logger.max_size_mb":  100,
	"logger.max_age_days": 10,
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in the working directory is loaded into the environment first.
// A missing config.yml is not an error; defaults and environment apply.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Allow environment variables to override config file, e.g. MARKETDATA_API_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Every key needs a default so that Unmarshal picks up env-only values.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}
