package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherDescriptionKnownCodes(t *testing.T) {
	for _, code := range KnownWeatherCodes() {
		got := WeatherDescription(code)
		assert.NotEqual(t, UnknownCondition, got, "code %d", code)
		assert.Equal(t, descriptions[code], got)
	}
	assert.Equal(t, "Clear sky", WeatherDescription(0))
	assert.Equal(t, "Thunderstorm with heavy hail", WeatherDescription(99))
}

func TestWeatherDescriptionFallback(t *testing.T) {
	for _, code := range []int{999, -1, 4, 50, 100} {
		assert.Equal(t, UnknownCondition, WeatherDescription(code), "code %d", code)
	}
}

func TestWeatherIcon(t *testing.T) {
	tests := []struct {
		code  int
		isDay bool
		want  string
	}{
		{0, true, "clear_day"},
		{0, false, "bedtime"},
		{1, false, "wb_twilight"},
		{3, true, "filter_drama"},
		{3, false, "cloud"},
		{45, false, "foggy"},
		{65, true, "rainy_heavy"},
		{99, true, "bolt"},
		{999, true, "partly_cloudy_day"},
		{-1, false, "partly_cloudy_night"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeatherIcon(tt.code, tt.isDay), "code %d day %v", tt.code, tt.isDay)
	}

	for _, code := range KnownWeatherCodes() {
		_, ok := icons[code]
		assert.True(t, ok, "missing icon for code %d", code)
	}
}

func TestWeatherEmoji(t *testing.T) {
	assert.Equal(t, "☀️", WeatherEmoji(0, true))
	assert.Equal(t, "🌙", WeatherEmoji(0, false))
	assert.Equal(t, "☁️", WeatherEmoji(3, true))
	assert.Equal(t, "🌧️", WeatherEmoji(61, true))
	assert.Equal(t, "⛈️", WeatherEmoji(95, false))
	assert.Equal(t, "⛅", WeatherEmoji(999, true))
	assert.Equal(t, "🌙", WeatherEmoji(999, false))

	for _, code := range KnownWeatherCodes() {
		_, ok := emojis[code]
		assert.True(t, ok, "missing emoji for code %d", code)
	}
}

func TestClassifyAirQualityBoundaries(t *testing.T) {
	tests := []struct {
		aqi  float64
		want AirQualityLevel
	}{
		{-5, AirQualityGood},
		{0, AirQualityGood},
		{20, AirQualityGood},
		{21, AirQualityFair},
		{40, AirQualityFair},
		{40.5, AirQualityModerate},
		{60, AirQualityModerate},
		{80, AirQualityPoor},
		{100, AirQualityVeryPoor},
		{101, AirQualityExtremelyPoor},
		{500, AirQualityExtremelyPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyAirQuality(tt.aqi).Level, "aqi %v", tt.aqi)
	}
	assert.Equal(t, "#00e400", ClassifyAirQuality(10).Color)
	assert.Equal(t, "#7e0023", ClassifyAirQuality(150).Color)
}

func TestClassifyUVIndexBoundaries(t *testing.T) {
	tests := []struct {
		uv   float64
		want UVLevel
	}{
		{0, UVLow},
		{2.9, UVLow},
		{3, UVModerate},
		{5.99, UVModerate},
		{6, UVHigh},
		{8, UVVeryHigh},
		{10.99, UVVeryHigh},
		{11, UVExtreme},
		{14, UVExtreme},
	}
	for _, tt := range tests {
		got := ClassifyUVIndex(tt.uv)
		assert.Equal(t, tt.want, got.Level, "uv %v", tt.uv)
		assert.NotEmpty(t, got.Recommendation)
	}
}

func TestWindDirectionCardinals(t *testing.T) {
	want := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	for i, d := range []float64{0, 45, 90, 135, 180, 225, 270, 315} {
		assert.Equal(t, want[i], WindDirection(d), "degrees %v", d)
		assert.Equal(t, want[i], DescribeWindDirection(d).Cardinal, "degrees %v", d)
	}
}

func TestDescribeWindDirectionNormalizes(t *testing.T) {
	assert.Equal(t, DescribeWindDirection(90), DescribeWindDirection(450))
	assert.Equal(t, DescribeWindDirection(270), DescribeWindDirection(-90))

	info := DescribeWindDirection(-90)
	assert.Equal(t, 270.0, info.Degrees)
	assert.Equal(t, "W", info.Cardinal)
	assert.Equal(t, "West", info.Description)

	assert.Equal(t, "N", WindDirection(359))
	assert.Equal(t, "N", WindDirection(337.5))
	assert.Equal(t, "NE", WindDirection(22.5))
	assert.Equal(t, "N", WindDirection(-360))
}

func TestConvertWindSpeed(t *testing.T) {
	assert.Equal(t, 0.0, ConvertWindSpeed(0))
	assert.Equal(t, 36.0, ConvertWindSpeed(10))
	assert.Equal(t, 9.0, ConvertWindSpeed(2.5))
}

func TestConvertPressure(t *testing.T) {
	assert.Equal(t, 1013.0, ConvertPressure(1013, HPa))
	assert.Equal(t, 760.0, ConvertPressure(1013, MmHg))
	assert.Equal(t, 29.91, ConvertPressure(1013, InHg))
	assert.Equal(t, 1013.0, ConvertPressure(1013, PressureUnit("bar")))
}

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		name      string
		celsius   float64
		unit      TemperatureUnit
		precision int
		want      string
	}{
		{"fahrenheit", 25, Fahrenheit, 0, "77°F"},
		{"freezing in fahrenheit", 0, Fahrenheit, 0, "32°F"},
		{"celsius two decimals", 25.6789, Celsius, 2, "25.68°C"},
		{"celsius rounded", 21.6, Celsius, 0, "22°C"},
		{"trailing zeros dropped", 20.0, Celsius, 2, "20°C"},
		{"negative zero", -0.4, Celsius, 0, "0°C"},
		{"rounded before conversion", 25.4, Fahrenheit, 0, "77°F"},
		{"negative precision", 18.7, Celsius, -1, "19°C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatTemperature(tt.celsius, tt.unit, tt.precision))
		})
	}
}
