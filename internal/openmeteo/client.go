package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/city-weather/internal/metrics"
)

// Upstream endpoint names, used for breakers and metric labels.
const (
	EndpointGeocoding  = "geocoding"
	EndpointForecast   = "forecast"
	EndpointAirQuality = "air_quality"
)

// Hosts are the base URLs of the three upstream services.
type Hosts struct {
	Geocoding  string
	Weather    string
	AirQuality string
}

// DefaultHosts returns the public Open-Meteo hosts.
func DefaultHosts() Hosts {
	return Hosts{
		Geocoding:  "https://geocoding-api.open-meteo.com",
		Weather:    "https://api.open-meteo.com",
		AirQuality: "https://air-quality-api.open-meteo.com",
	}
}

// BackoffConfig controls exponential backoff between attempts.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// BreakerConfig mirrors the gobreaker settings applied to each endpoint.
type BreakerConfig struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
}

// Config bundles everything NewClient needs besides the http.Client.
type Config struct {
	Hosts   Hosts
	Backoff BackoffConfig
	Breaker BreakerConfig
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Hosts: DefaultHosts(),
		Backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		Breaker: BreakerConfig{
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		},
	}
}

// Client talks to the geocoding, forecast and air-quality APIs. Each endpoint
// has its own circuit breaker.
type Client struct {
	http     *http.Client
	hosts    Hosts
	backoff  BackoffConfig
	breakers map[string]*gobreaker.TwoStepCircuitBreaker
	logger   *zap.Logger
}

// NewClient validates cfg and builds a Client.
func NewClient(httpClient *http.Client, cfg Config, logger *zap.Logger) (*Client, error) {
	if httpClient == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Backoff.MaxRetries < 0 || cfg.Backoff.InitialInterval <= 0 {
		return nil, fmt.Errorf("%w: backoff", errInvalidConfig)
	}
	if cfg.Hosts.Geocoding == "" || cfg.Hosts.Weather == "" || cfg.Hosts.AirQuality == "" {
		return nil, fmt.Errorf("%w: hosts", errInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	breakers := make(map[string]*gobreaker.TwoStepCircuitBreaker, 3)
	for _, name := range []string{EndpointGeocoding, EndpointForecast, EndpointAirQuality} {
		breakers[name] = gobreaker.NewTwoStepCircuitBreaker(gobreaker.Settings{
			Name:        "openmeteo-" + name,
			MaxRequests: cfg.Breaker.MaxRequests,
			Interval:    cfg.Breaker.Interval,
			Timeout:     cfg.Breaker.Timeout,
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		})
	}

	return &Client{
		http:     httpClient,
		hosts:    cfg.Hosts,
		backoff:  cfg.Backoff,
		breakers: breakers,
		logger:   logger,
	}, nil
}

// SearchCity looks a place name up. The name is sent as given.
func (c *Client) SearchCity(ctx context.Context, name string) (*GeocodingResponse, error) {
	q := url.Values{}
	q.Set("name", name)

	var out GeocodingResponse
	if err := c.getJSON(ctx, EndpointGeocoding, c.hosts.Geocoding, "/v1/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentWeather requests the current block only.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (*ForecastResponse, error) {
	q := coordinates(lat, lon)
	q.Set("current", csv(CurrentWeatherFields))

	var out ForecastResponse
	if err := c.getJSON(ctx, EndpointForecast, c.hosts.Weather, "/v1/forecast", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DetailedForecast requests the hourly and daily blocks for the given horizon.
func (c *Client) DetailedForecast(ctx context.Context, lat, lon float64, days int) (*ForecastResponse, error) {
	q := coordinates(lat, lon)
	q.Set("hourly", csv(HourlyWeatherFields))
	q.Set("daily", csv(DailyWeatherFields))
	q.Set("forecast_days", strconv.Itoa(days))
	q.Set("timezone", "auto")

	var out ForecastResponse
	if err := c.getJSON(ctx, EndpointForecast, c.hosts.Weather, "/v1/forecast", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentAirQuality requests the current pollutant block.
func (c *Client) CurrentAirQuality(ctx context.Context, lat, lon float64) (*AirQualityResponse, error) {
	q := coordinates(lat, lon)
	q.Set("current", csv(CurrentAirQualityFields))

	var out AirQualityResponse
	if err := c.getJSON(ctx, EndpointAirQuality, c.hosts.AirQuality, "/v1/air-quality", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DetailedAirQuality requests the hourly pollutant block for the given horizon.
func (c *Client) DetailedAirQuality(ctx context.Context, lat, lon float64, days int) (*AirQualityResponse, error) {
	q := coordinates(lat, lon)
	q.Set("hourly", csv(HourlyAirQualityFields))
	q.Set("forecast_days", strconv.Itoa(days))
	q.Set("timezone", "auto")

	var out AirQualityResponse
	if err := c.getJSON(ctx, EndpointAirQuality, c.hosts.AirQuality, "/v1/air-quality", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func coordinates(lat, lon float64) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	return q
}

// getJSON performs a GET with retries and the endpoint's circuit breaker, and
// decodes a 2xx body into out.
func (c *Client) getJSON(ctx context.Context, endpoint, host, path string, query url.Values, out any) error {
	target := strings.TrimRight(host, "/") + path + "?" + query.Encode()
	cb := c.breakers[endpoint]

	op := func() error {
		start := time.Now()

		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}

		var err error
		done, allowErr := cb.Allow()
		if allowErr != nil {
			err = allowErr
		} else {
			err = c.fetch(ctx, target, out)
			if err != nil && ctx.Err() != nil {
				// A call abandoned by the caller says nothing about the upstream.
				// Only a half-open breaker needs its slot back, and it must not
				// close on it.
				if cb.State() == gobreaker.StateHalfOpen {
					done(false)
				}
				err = ctx.Err()
			} else {
				done(err == nil)
			}
		}
		observe(endpoint, err, time.Since(start))

		switch {
		case err == nil:
			return nil
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			return backoff.Permanent(fmt.Errorf("%w: %s: %v", ErrCircuitOpen, endpoint, err))
		case !retryable(err):
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("upstream request failed, retrying",
			zap.String("endpoint", endpoint),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	return backoff.RetryNotify(op, c.newBackOff(ctx), notify)
}

func (c *Client) fetch(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &StatusError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return statusError(target, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.backoff.InitialInterval
	if c.backoff.MaxInterval > 0 {
		eb.MaxInterval = c.backoff.MaxInterval
	}
	eb.MaxElapsedTime = 0
	eb.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.backoff.MaxRetries)), ctx)
}

func observe(endpoint string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if code, ok := StatusCodeOf(err); ok && code != 0 {
			outcome = strconv.Itoa(code)
		} else if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "circuit_open"
		} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = "canceled"
		}
	}
	metrics.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
