package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/weather-forecast-gateway/internal/common"
)

// AppConfig is the process configuration, read from the environment.
type AppConfig struct {
	// Provider credentials. Either may be empty; the pipeline skips providers
	// without a key.
	WeatherAPIKey     string `envconfig:"WEATHERAPI_API_KEY"`
	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY"`

	// ZipCountry is the country used for numeric (postal code) OpenWeatherMap lookups.
	ZipCountry string `envconfig:"ZIP_COUNTRY" default:"IN"`

	HTTPTimeout        time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	ProviderMaxRetries int           `envconfig:"PROVIDER_MAX_RETRIES" default:"1"`

	// Forecast cache; a zero TTL disables it.
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"0s"`
	CacheMaxEntries int           `envconfig:"CACHE_MAX_ENTRIES" default:"256"`

	// Locations the scheduler keeps warm while the cache is enabled.
	WarmLocations string        `envconfig:"WARM_LOCATIONS"`
	WarmInterval  time.Duration `envconfig:"WARM_INTERVAL" default:"15m"`

	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Env      string `envconfig:"APP_ENV" default:"production"`
}

// legacyKeys are the variable names the web front-end used for the same keys.
var legacyKeys = map[string]string{
	"WEATHERAPI_API_KEY":  "NEXT_PUBLIC_WEATHER_API_KEY",
	"OPENWEATHER_API_KEY": "NEXT_PUBLIC_OPENWEATHER_API_KEY",
}

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is honoured if present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.WeatherAPIKey == "" {
		cfg.WeatherAPIKey = os.Getenv(legacyKeys["WEATHERAPI_API_KEY"])
	}
	if cfg.OpenWeatherAPIKey == "" {
		cfg.OpenWeatherAPIKey = os.Getenv(legacyKeys["OPENWEATHER_API_KEY"])
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}
	if c.ProviderMaxRetries < 0 {
		return fmt.Errorf("invalid PROVIDER_MAX_RETRIES: must not be negative")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("invalid CACHE_TTL: must not be negative")
	}
	return nil
}

// Locations returns the parsed WARM_LOCATIONS list.
func (c *AppConfig) Locations() []string {
	return common.SplitList(c.WarmLocations)
}

// CacheEnabled reports whether forecast caching is on.
func (c *AppConfig) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// Development reports whether the process runs in a development environment.
func (c *AppConfig) Development() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}
