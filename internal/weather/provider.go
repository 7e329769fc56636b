package weather

import (
	"context"

	"github.com/i474232898/city-weather/internal/openmeteo"
)

// Upstream is the set of raw API calls the Service composes.
// *openmeteo.Client satisfies it.
type Upstream interface {
	SearchCity(ctx context.Context, name string) (*openmeteo.GeocodingResponse, error)
	CurrentWeather(ctx context.Context, lat, lon float64) (*openmeteo.ForecastResponse, error)
	DetailedForecast(ctx context.Context, lat, lon float64, days int) (*openmeteo.ForecastResponse, error)
	CurrentAirQuality(ctx context.Context, lat, lon float64) (*openmeteo.AirQualityResponse, error)
	DetailedAirQuality(ctx context.Context, lat, lon float64, days int) (*openmeteo.AirQualityResponse, error)
}

var _ Upstream = (*openmeteo.Client)(nil)
