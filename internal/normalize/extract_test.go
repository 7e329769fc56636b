package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/city-weather/internal/openmeteo"
	"github.com/i474232898/city-weather/internal/weather"
)

const forecastPayload = `{
	"latitude": 52.52,
	"longitude": 13.41,
	"current_units": {"wind_speed_10m": "km/h"},
	"current": {
		"time": "2024-06-01T12:00",
		"temperature_2m": 21.4,
		"apparent_temperature": 20.1,
		"relative_humidity_2m": 55,
		"is_day": 1,
		"weather_code": 2,
		"cloud_cover": 40,
		"pressure_msl": 1013.2,
		"surface_pressure": 1008.7,
		"wind_speed_10m": 12.3,
		"wind_direction_10m": 250,
		"wind_gusts_10m": 25.9
	},
	"hourly": {
		"time": ["2024-06-01T00:00", "2024-06-01T01:00"],
		"temperature_2m": [15.1, 14.8],
		"apparent_temperature": [14.0, 13.5]
	}
}`

func decodeForecast(t *testing.T, body string) *openmeteo.ForecastResponse {
	t.Helper()
	var p openmeteo.ForecastResponse
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return &p
}

func TestExtractCurrentBlock(t *testing.T) {
	p := decodeForecast(t, forecastPayload)

	temp, ok := ExtractTemperature(p)
	require.True(t, ok)
	assert.Equal(t, Temperature{Temperature: 21.4, ApparentTemperature: 20.1}, temp)

	wind, ok := ExtractWind(p)
	require.True(t, ok)
	assert.Equal(t, Wind{Speed: 12.3, Direction: 250, Gusts: 25.9, SpeedUnit: "km/h"}, wind)

	cond, ok := ExtractCondition(p)
	require.True(t, ok)
	assert.Equal(t, Condition{WeatherCode: 2, IsDay: true}, cond)

	atm, ok := ExtractAtmosphere(p)
	require.True(t, ok)
	assert.Equal(t, 1013.2, atm.PressureMSL)
	assert.Equal(t, 55.0, atm.Humidity)
}

func TestExtractHourlyTemperature(t *testing.T) {
	h, ok := ExtractHourlyTemperature(decodeForecast(t, forecastPayload))
	require.True(t, ok)
	assert.Len(t, h.Time, 2)
	assert.Equal(t, []float64{15.1, 14.8}, h.Temperature)
	assert.Equal(t, []float64{14.0, 13.5}, h.ApparentTemperature)
}

func TestExtractHourlyTemperatureLengthMismatch(t *testing.T) {
	p := decodeForecast(t, `{"hourly":{"time":["a","b"],"temperature_2m":[1],"apparent_temperature":[1,2]}}`)
	_, ok := ExtractHourlyTemperature(p)
	assert.False(t, ok)
}

func TestExtractorsOnAbsentBlocks(t *testing.T) {
	empty := decodeForecast(t, `{"latitude":1,"longitude":2}`)

	for _, p := range []*openmeteo.ForecastResponse{nil, empty} {
		_, ok := ExtractTemperature(p)
		assert.False(t, ok)
		_, ok = ExtractWind(p)
		assert.False(t, ok)
		_, ok = ExtractCondition(p)
		assert.False(t, ok)
		_, ok = ExtractAtmosphere(p)
		assert.False(t, ok)
		_, ok = ExtractHourlyTemperature(p)
		assert.False(t, ok)
		_, ok = ExtractDaily(p)
		assert.False(t, ok)
	}

	for _, p := range []*openmeteo.AirQualityResponse{nil, {}} {
		_, ok := ExtractAirQualityIndex(p)
		assert.False(t, ok)
		_, ok = ExtractUVIndex(p)
		assert.False(t, ok)
		_, ok = ExtractHourlyAirQualityIndex(p)
		assert.False(t, ok)
	}
}

func TestExtractDaily(t *testing.T) {
	p := decodeForecast(t, `{"daily":{
		"time":["2024-06-01","2024-06-02"],
		"weather_code":[3,61],
		"temperature_2m_max":[24.1,19.0],
		"temperature_2m_min":[12.3,11.0],
		"uv_index_max":[6.2,2.1],
		"precipitation_sum":[0,8.4],
		"wind_direction_10m_dominant":[270,180]
	}}`)

	d, ok := ExtractDaily(p)
	require.True(t, ok)
	assert.Equal(t, []int{3, 61}, d.WeatherCode)
	assert.Equal(t, []float64{0, 8.4}, d.PrecipitationSum)
}

func TestExtractAirQuality(t *testing.T) {
	var p openmeteo.AirQualityResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"current":{"european_aqi":35,"us_aqi":48,"uv_index":5.5},
		"hourly":{"time":["t0","t1"],"european_aqi":[30,31],"us_aqi":[40,41]}
	}`), &p))

	aqi, ok := ExtractAirQualityIndex(&p)
	require.True(t, ok)
	assert.Equal(t, AirQualityIndex{EuropeanAQI: 35, USAQI: 48}, aqi)

	uv, ok := ExtractUVIndex(&p)
	require.True(t, ok)
	assert.Equal(t, 5.5, uv)

	hourly, ok := ExtractHourlyAirQualityIndex(&p)
	require.True(t, ok)
	assert.Equal(t, []float64{30, 31}, hourly.EuropeanAQI)
}

func TestExtractLocationAndCoordinates(t *testing.T) {
	code := "PT"
	city := weather.ResolvedCity{
		Coordinates:  weather.Coordinates{Latitude: 38.72, Longitude: -9.14},
		LocationInfo: weather.LocationInfo{Name: "Lisbon", CountryCode: &code},
	}

	info := ExtractLocationInfo(city)
	assert.Equal(t, "Lisbon", info.Name)
	assert.Nil(t, info.Country)
	assert.Nil(t, info.Admin1)
	require.NotNil(t, info.CountryCode)
	assert.Equal(t, "PT", *info.CountryCode)

	assert.Equal(t, weather.Coordinates{Latitude: 38.72, Longitude: -9.14}, ExtractCoordinates(city))
}
