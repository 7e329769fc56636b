package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/city-weather/internal/openmeteo"
	"github.com/i474232898/city-weather/internal/selection"
)

// EnvPrefix is prepended to every environment override:
// CITYWEATHER_SERVER_PORT maps to server.port.
const EnvPrefix = "CITYWEATHER"

type AppConfig struct {
	Server    ServerConfig    `mapstructure:"server"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	OpenMeteo OpenMeteoConfig `mapstructure:"openmeteo"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
	Selection SelectionConfig `mapstructure:"selection"`
	Refresh   RefreshConfig   `mapstructure:"refresh"`
	Log       LogConfig       `mapstructure:"log"`
	NATS      NATSConfig      `mapstructure:"nats"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type OpenMeteoConfig struct {
	GeocodingHost  string `mapstructure:"geocoding_host"`
	WeatherHost    string `mapstructure:"weather_host"`
	AirQualityHost string `mapstructure:"air_quality_host"`
}

type RetryConfig struct {
	MaxRetries      int           `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

type BreakerConfig struct {
	MaxRequests uint32        `mapstructure:"max_requests"`
	Interval    time.Duration `mapstructure:"interval"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type SelectionConfig struct {
	DefaultCity  string `mapstructure:"default_city"`
	FallbackCity string `mapstructure:"fallback_city"`
}

// RefreshConfig controls the background conditions refresh. The interval
// also bounds how long a stored snapshot counts as fresh.
type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NATSConfig is optional; an empty URL disables selection notifications.
type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

// Load reads .env (if present), an optional config.yaml and CITYWEATHER_*
// environment variables, in increasing order of precedence.
func Load() (*AppConfig, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	hosts := openmeteo.DefaultHosts()
	om := openmeteo.DefaultConfig()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("openmeteo.geocoding_host", hosts.Geocoding)
	v.SetDefault("openmeteo.weather_host", hosts.Weather)
	v.SetDefault("openmeteo.air_quality_host", hosts.AirQuality)
	v.SetDefault("retry.max_retries", om.Backoff.MaxRetries)
	v.SetDefault("retry.initial_interval", om.Backoff.InitialInterval)
	v.SetDefault("retry.max_interval", om.Backoff.MaxInterval)
	v.SetDefault("breaker.max_requests", om.Breaker.MaxRequests)
	v.SetDefault("breaker.interval", om.Breaker.Interval)
	v.SetDefault("breaker.timeout", om.Breaker.Timeout)
	v.SetDefault("selection.default_city", "Sao Paulo")
	v.SetDefault("selection.fallback_city", "Rio de Janeiro")
	v.SetDefault("refresh.interval", 15*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "cityweather.selection.changed")
}

// Validate reports every invalid field at once.
func (c *AppConfig) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, "http.timeout must be positive")
	}
	if c.OpenMeteo.GeocodingHost == "" || c.OpenMeteo.WeatherHost == "" || c.OpenMeteo.AirQualityHost == "" {
		errs = append(errs, "openmeteo hosts are required")
	}
	if c.Retry.MaxRetries < 0 {
		errs = append(errs, "retry.max_retries must not be negative")
	}
	if c.Retry.InitialInterval <= 0 {
		errs = append(errs, "retry.initial_interval must be positive")
	}
	if c.Retry.MaxInterval < c.Retry.InitialInterval {
		errs = append(errs, "retry.max_interval must not be below retry.initial_interval")
	}
	if c.Refresh.Interval <= 0 {
		errs = append(errs, "refresh.interval must be positive")
	}
	if strings.TrimSpace(c.Selection.DefaultCity) == "" {
		errs = append(errs, "selection.default_city is required")
	}
	if c.NATS.URL != "" && c.NATS.Subject == "" {
		errs = append(errs, "nats.subject is required when nats.url is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Upstream converts the loaded settings into an openmeteo.Config.
func (c *AppConfig) Upstream() openmeteo.Config {
	return openmeteo.Config{
		Hosts: openmeteo.Hosts{
			Geocoding:  c.OpenMeteo.GeocodingHost,
			Weather:    c.OpenMeteo.WeatherHost,
			AirQuality: c.OpenMeteo.AirQualityHost,
		},
		Backoff: openmeteo.BackoffConfig{
			MaxRetries:      c.Retry.MaxRetries,
			InitialInterval: c.Retry.InitialInterval,
			MaxInterval:     c.Retry.MaxInterval,
		},
		Breaker: openmeteo.BreakerConfig{
			MaxRequests: c.Breaker.MaxRequests,
			Interval:    c.Breaker.Interval,
			Timeout:     c.Breaker.Timeout,
		},
	}
}

func (c *AppConfig) SelectionOptions() selection.Options {
	return selection.Options{
		DefaultCity:  c.Selection.DefaultCity,
		FallbackCity: c.Selection.FallbackCity,
	}
}
