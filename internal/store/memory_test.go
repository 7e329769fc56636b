package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/city-weather/internal/openmeteo"
	"github.com/i474232898/city-weather/internal/weather"
)

func snapshot(temp float64, isDay int) Snapshot {
	return Snapshot{
		City: weather.ResolvedCity{LocationInfo: weather.LocationInfo{Name: "Oslo"}},
		Weather: &openmeteo.ForecastResponse{Current: &openmeteo.CurrentWeather{
			Temperature: temp,
			IsDay:       isDay,
			WeatherCode: 71,
		}},
		AirQuality: &openmeteo.AirQualityResponse{Current: &openmeteo.CurrentAirQuality{EuropeanAQI: 18}},
	}
}

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore(0)

	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrNotFound)

	st := s.Status()
	assert.True(t, st.Ready)
	assert.Nil(t, st.Snapshot)

	_, ok := s.CurrentTemperature()
	assert.False(t, ok)
	_, ok = s.WeatherCode()
	assert.False(t, ok)
	assert.False(t, s.IsDay())
}

func TestMemoryStoreLifecycle(t *testing.T) {
	s := NewMemoryStore(0)

	s.SetLoading(true)
	st := s.Status()
	assert.True(t, st.Loading)
	assert.False(t, st.Ready)

	s.Save(snapshot(-3.6, 0))
	st = s.Status()
	assert.False(t, st.Loading)
	assert.True(t, st.Ready)
	require.NotNil(t, st.Snapshot)
	assert.False(t, st.Snapshot.UpdatedAt.IsZero())

	temp, ok := s.CurrentTemperature()
	require.True(t, ok)
	assert.Equal(t, -4, temp)
	code, ok := s.WeatherCode()
	require.True(t, ok)
	assert.Equal(t, 71, code)
	assert.False(t, s.IsDay())

	s.SetLoading(true)
	s.SetError("weather service temporarily unavailable")
	st = s.Status()
	assert.False(t, st.Loading)
	assert.True(t, st.HasError)
	assert.False(t, st.Ready)
	require.NotNil(t, st.Snapshot, "previous snapshot is kept on error")

	s.Save(snapshot(10, 1))
	st = s.Status()
	assert.False(t, st.HasError)
	assert.Empty(t, st.Error)
	assert.True(t, s.IsDay())

	s.Clear()
	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreMaxAge(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Save(snapshot(20, 1))
	_, err := s.Latest()
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	_, err = s.Latest()
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Latest()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, s.Status().Snapshot)
}
