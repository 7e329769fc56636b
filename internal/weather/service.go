package weather

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/city-weather/internal/openmeteo"
)

const (
	DefaultForecastDays   = 7
	DefaultAirQualityDays = 5

	// MaxAirQualityDays caps the air-quality horizon of Comprehensive no matter
	// how many forecast days were requested.
	MaxAirQualityDays = 5
)

// Service resolves cities and composes the forecast and air-quality calls.
type Service struct {
	upstream Upstream
	logger   *zap.Logger
}

// NewService creates a new Service.
func NewService(upstream Upstream, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		upstream: upstream,
		logger:   logger,
	}
}

// ResolveCity geocodes name and returns the first match.
func (s *Service) ResolveCity(ctx context.Context, name string) (ResolvedCity, error) {
	resp, err := s.upstream.SearchCity(ctx, name)
	if err != nil {
		return ResolvedCity{}, fmt.Errorf("geocode %q: %w", name, err)
	}
	if resp == nil || len(resp.Results) == 0 {
		return ResolvedCity{}, ErrCityNotFound
	}
	return cityFromResult(resp.Results[0]), nil
}

// CurrentWeather fetches the instantaneous reading at a position.
func (s *Service) CurrentWeather(ctx context.Context, lat, lon float64) (*openmeteo.ForecastResponse, error) {
	resp, err := s.upstream.CurrentWeather(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("current weather: %w", err)
	}
	return resp, nil
}

// DetailedForecast fetches hourly and daily series. days <= 0 means DefaultForecastDays.
func (s *Service) DetailedForecast(ctx context.Context, lat, lon float64, days int) (*openmeteo.ForecastResponse, error) {
	if days <= 0 {
		days = DefaultForecastDays
	}
	resp, err := s.upstream.DetailedForecast(ctx, lat, lon, days)
	if err != nil {
		return nil, fmt.Errorf("detailed forecast: %w", err)
	}
	return resp, nil
}

// CurrentAirQuality fetches the instantaneous pollutant reading at a position.
func (s *Service) CurrentAirQuality(ctx context.Context, lat, lon float64) (*openmeteo.AirQualityResponse, error) {
	resp, err := s.upstream.CurrentAirQuality(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("current air quality: %w", err)
	}
	return resp, nil
}

// DetailedAirQuality fetches the hourly pollutant series. days <= 0 means
// DefaultAirQualityDays. The value is passed through unclamped.
func (s *Service) DetailedAirQuality(ctx context.Context, lat, lon float64, days int) (*openmeteo.AirQualityResponse, error) {
	if days <= 0 {
		days = DefaultAirQualityDays
	}
	resp, err := s.upstream.DetailedAirQuality(ctx, lat, lon, days)
	if err != nil {
		return nil, fmt.Errorf("detailed air quality: %w", err)
	}
	return resp, nil
}

// CurrentConditions fetches current weather and air quality concurrently. The
// first failure cancels the other request and is returned.
func (s *Service) CurrentConditions(ctx context.Context, lat, lon float64) (Conditions, error) {
	var out Conditions

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.CurrentWeather(gctx, lat, lon)
		if err != nil {
			return err
		}
		out.Weather = resp
		return nil
	})
	g.Go(func() error {
		resp, err := s.CurrentAirQuality(gctx, lat, lon)
		if err != nil {
			return err
		}
		out.AirQuality = resp
		return nil
	})

	if err := g.Wait(); err != nil {
		return Conditions{}, err
	}
	return out, nil
}

// Comprehensive resolves cityName, then fetches the detailed forecast for
// forecastDays and the detailed air quality for min(forecastDays, MaxAirQualityDays)
// concurrently. Nothing is fetched when the city cannot be resolved.
func (s *Service) Comprehensive(ctx context.Context, cityName string, forecastDays int) (Comprehensive, error) {
	if forecastDays <= 0 {
		forecastDays = DefaultForecastDays
	}
	airDays := min(forecastDays, MaxAirQualityDays)

	log := s.logger.With(
		zap.String("orchestration_id", uuid.NewString()),
		zap.String("city", cityName),
	)

	city, err := s.ResolveCity(ctx, cityName)
	if err != nil {
		log.Debug("city resolution failed", zap.Error(err))
		return Comprehensive{}, err
	}

	log.Debug("city resolved, fetching details",
		zap.String("key", city.Key()),
		zap.Int("forecast_days", forecastDays),
		zap.Int("air_quality_days", airDays))

	result := Comprehensive{Location: city}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.DetailedForecast(gctx, city.Latitude, city.Longitude, forecastDays)
		if err != nil {
			return err
		}
		result.Weather = resp
		return nil
	})
	g.Go(func() error {
		resp, err := s.DetailedAirQuality(gctx, city.Latitude, city.Longitude, airDays)
		if err != nil {
			return err
		}
		result.AirQuality = resp
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Debug("detail fetch failed", zap.Error(err))
		return Comprehensive{}, err
	}
	return result, nil
}
