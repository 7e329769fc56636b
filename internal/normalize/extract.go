// Package normalize projects verbose upstream payloads onto small, stable
// shapes. Every extractor is total: a missing block yields ok == false instead
// of an error. Values are copied as received, with no unit conversion.
package normalize

import (
	"github.com/i474232898/city-weather/internal/openmeteo"
	"github.com/i474232898/city-weather/internal/weather"
)

type Temperature struct {
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparentTemperature"`
}

type Wind struct {
	Speed     float64 `json:"speed"`
	Direction float64 `json:"direction"`
	Gusts     float64 `json:"gusts"`
	// SpeedUnit is the unit the upstream reported for Speed and Gusts, if any.
	SpeedUnit string `json:"speedUnit,omitempty"`
}

type Condition struct {
	WeatherCode int  `json:"weatherCode"`
	IsDay       bool `json:"isDay"`
}

type Atmosphere struct {
	Humidity        float64 `json:"humidity"`
	PressureMSL     float64 `json:"pressureMsl"`
	SurfacePressure float64 `json:"surfacePressure"`
	CloudCover      float64 `json:"cloudCover"`
}

type HourlyTemperature struct {
	Time                []string  `json:"time"`
	Temperature         []float64 `json:"temperature"`
	ApparentTemperature []float64 `json:"apparentTemperature"`
}

type Daily struct {
	Time                  []string  `json:"time"`
	WeatherCode           []int     `json:"weatherCode"`
	TemperatureMax        []float64 `json:"temperatureMax"`
	TemperatureMin        []float64 `json:"temperatureMin"`
	UVIndexMax            []float64 `json:"uvIndexMax"`
	PrecipitationSum      []float64 `json:"precipitationSum"`
	WindDirectionDominant []float64 `json:"windDirectionDominant"`
}

type AirQualityIndex struct {
	EuropeanAQI float64 `json:"europeanAqi"`
	USAQI       float64 `json:"usAqi"`
}

type HourlyAirQualityIndex struct {
	Time        []string  `json:"time"`
	EuropeanAQI []float64 `json:"europeanAqi"`
	USAQI       []float64 `json:"usAqi"`
}

func ExtractTemperature(p *openmeteo.ForecastResponse) (Temperature, bool) {
	if p == nil || p.Current == nil {
		return Temperature{}, false
	}
	return Temperature{
		Temperature:         p.Current.Temperature,
		ApparentTemperature: p.Current.ApparentTemperature,
	}, true
}

func ExtractWind(p *openmeteo.ForecastResponse) (Wind, bool) {
	if p == nil || p.Current == nil {
		return Wind{}, false
	}
	return Wind{
		Speed:     p.Current.WindSpeed,
		Direction: p.Current.WindDirection,
		Gusts:     p.Current.WindGusts,
		SpeedUnit: p.CurrentUnits["wind_speed_10m"],
	}, true
}

func ExtractCondition(p *openmeteo.ForecastResponse) (Condition, bool) {
	if p == nil || p.Current == nil {
		return Condition{}, false
	}
	return Condition{
		WeatherCode: p.Current.WeatherCode,
		IsDay:       p.Current.IsDay == 1,
	}, true
}

func ExtractAtmosphere(p *openmeteo.ForecastResponse) (Atmosphere, bool) {
	if p == nil || p.Current == nil {
		return Atmosphere{}, false
	}
	return Atmosphere{
		Humidity:        p.Current.RelativeHumidity,
		PressureMSL:     p.Current.PressureMSL,
		SurfacePressure: p.Current.SurfacePressure,
		CloudCover:      p.Current.CloudCover,
	}, true
}

// ExtractHourlyTemperature reports no data when the block is missing or its
// arrays disagree in length.
func ExtractHourlyTemperature(p *openmeteo.ForecastResponse) (HourlyTemperature, bool) {
	if p == nil || p.Hourly == nil {
		return HourlyTemperature{}, false
	}
	h := p.Hourly
	if !sameLength(len(h.Time), len(h.Temperature), len(h.ApparentTemperature)) {
		return HourlyTemperature{}, false
	}
	return HourlyTemperature{
		Time:                h.Time,
		Temperature:         h.Temperature,
		ApparentTemperature: h.ApparentTemperature,
	}, true
}

// ExtractDaily reports no data when the block is missing or its arrays
// disagree in length.
func ExtractDaily(p *openmeteo.ForecastResponse) (Daily, bool) {
	if p == nil || p.Daily == nil {
		return Daily{}, false
	}
	d := p.Daily
	if !sameLength(len(d.Time), len(d.WeatherCode), len(d.TemperatureMax), len(d.TemperatureMin),
		len(d.UVIndexMax), len(d.PrecipitationSum), len(d.WindDirectionDominant)) {
		return Daily{}, false
	}
	return Daily{
		Time:                  d.Time,
		WeatherCode:           d.WeatherCode,
		TemperatureMax:        d.TemperatureMax,
		TemperatureMin:        d.TemperatureMin,
		UVIndexMax:            d.UVIndexMax,
		PrecipitationSum:      d.PrecipitationSum,
		WindDirectionDominant: d.WindDirectionDominant,
	}, true
}

func ExtractAirQualityIndex(p *openmeteo.AirQualityResponse) (AirQualityIndex, bool) {
	if p == nil || p.Current == nil {
		return AirQualityIndex{}, false
	}
	return AirQualityIndex{
		EuropeanAQI: p.Current.EuropeanAQI,
		USAQI:       p.Current.USAQI,
	}, true
}

func ExtractUVIndex(p *openmeteo.AirQualityResponse) (float64, bool) {
	if p == nil || p.Current == nil {
		return 0, false
	}
	return p.Current.UVIndex, true
}

func ExtractHourlyAirQualityIndex(p *openmeteo.AirQualityResponse) (HourlyAirQualityIndex, bool) {
	if p == nil || p.Hourly == nil {
		return HourlyAirQualityIndex{}, false
	}
	h := p.Hourly
	if !sameLength(len(h.Time), len(h.EuropeanAQI), len(h.USAQI)) {
		return HourlyAirQualityIndex{}, false
	}
	return HourlyAirQualityIndex{
		Time:        h.Time,
		EuropeanAQI: h.EuropeanAQI,
		USAQI:       h.USAQI,
	}, true
}

// ExtractLocationInfo always succeeds. Optional fields stay nil when absent.
func ExtractLocationInfo(c weather.ResolvedCity) weather.LocationInfo {
	return c.LocationInfo
}

// ExtractCoordinates always succeeds.
func ExtractCoordinates(c weather.ResolvedCity) weather.Coordinates {
	return c.Coordinates
}

func sameLength(n int, others ...int) bool {
	for _, m := range others {
		if m != n {
			return false
		}
	}
	return true
}
