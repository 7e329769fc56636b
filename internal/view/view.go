// Package view composes normalised payload fields and their interpretations
// into display-ready models.
package view

import (
	"math"

	"github.com/i474232898/city-weather/internal/interpret"
	"github.com/i474232898/city-weather/internal/normalize"
	"github.com/i474232898/city-weather/internal/weather"
)

// Options selects display units.
type Options struct {
	TemperatureUnit interpret.TemperatureUnit
	PressureUnit    interpret.PressureUnit
	Precision       int
}

// DefaultOptions renders whole degrees Celsius and hectopascals.
func DefaultOptions() Options {
	return Options{
		TemperatureUnit: interpret.Celsius,
		PressureUnit:    interpret.HPa,
	}
}

type Wind struct {
	SpeedKmh  float64                     `json:"speedKmh"`
	GustsKmh  float64                     `json:"gustsKmh"`
	Direction interpret.WindDirectionInfo `json:"direction"`
}

type AirQuality struct {
	EuropeanAQI float64              `json:"europeanAqi"`
	USAQI       float64              `json:"usAqi"`
	Level       interpret.AirQuality `json:"level"`
}

// Current is the view of a city's current conditions. Sections whose source
// block was missing are nil.
type Current struct {
	Location            string             `json:"location"`
	Temperature         string             `json:"temperature,omitempty"`
	ApparentTemperature string             `json:"apparentTemperature,omitempty"`
	Low                 string             `json:"low,omitempty"`
	High                string             `json:"high,omitempty"`
	Description         string             `json:"description,omitempty"`
	Icon                string             `json:"icon,omitempty"`
	Emoji               string             `json:"emoji,omitempty"`
	IsDay               bool               `json:"isDay"`
	Humidity            *float64           `json:"humidity,omitempty"`
	CloudCover          *float64           `json:"cloudCover,omitempty"`
	Pressure            *float64           `json:"pressure,omitempty"`
	PressureUnit        string             `json:"pressureUnit,omitempty"`
	Wind                *Wind              `json:"wind,omitempty"`
	AirQuality          *AirQuality        `json:"airQuality,omitempty"`
	UV                  *interpret.UVIndex `json:"uv,omitempty"`
}

// Day is one row of the daily forecast.
type Day struct {
	Date          string                      `json:"date"`
	Description   string                      `json:"description"`
	Icon          string                      `json:"icon"`
	Max           string                      `json:"max"`
	Min           string                      `json:"min"`
	UV            interpret.UVIndex           `json:"uv"`
	Precipitation float64                     `json:"precipitation"`
	WindDirection interpret.WindDirectionInfo `json:"windDirection"`
}

type Hour struct {
	Time                string `json:"time"`
	Temperature         string `json:"temperature"`
	ApparentTemperature string `json:"apparentTemperature"`
}

type HourAirQuality struct {
	Time        string               `json:"time"`
	EuropeanAQI float64              `json:"europeanAqi"`
	USAQI       float64              `json:"usAqi"`
	Level       interpret.AirQuality `json:"level"`
}

// Forecast is the view of a comprehensive result.
type Forecast struct {
	Location   string           `json:"location"`
	Days       []Day            `json:"days"`
	Hours      []Hour           `json:"hours"`
	AirQuality []HourAirQuality `json:"airQuality"`
}

// LocationLabel renders "Name, CC", or just the name without a country code.
func LocationLabel(info weather.LocationInfo) string {
	if info.CountryCode == nil || *info.CountryCode == "" {
		return info.Name
	}
	return info.Name + ", " + *info.CountryCode
}

// BuildCurrent renders the current conditions of city.
func BuildCurrent(city weather.ResolvedCity, c weather.Conditions, opts Options) Current {
	out := Current{Location: LocationLabel(normalize.ExtractLocationInfo(city))}

	if temp, ok := normalize.ExtractTemperature(c.Weather); ok {
		out.Temperature = interpret.FormatTemperature(temp.Temperature, opts.TemperatureUnit, opts.Precision)
		out.ApparentTemperature = interpret.FormatTemperature(temp.ApparentTemperature, opts.TemperatureUnit, opts.Precision)
		lo, hi := math.Min(temp.Temperature, temp.ApparentTemperature), math.Max(temp.Temperature, temp.ApparentTemperature)
		out.Low = interpret.FormatTemperature(lo, opts.TemperatureUnit, opts.Precision)
		out.High = interpret.FormatTemperature(hi, opts.TemperatureUnit, opts.Precision)
	}

	if cond, ok := normalize.ExtractCondition(c.Weather); ok {
		out.Description = interpret.WeatherDescription(cond.WeatherCode)
		out.Icon = interpret.WeatherIcon(cond.WeatherCode, cond.IsDay)
		out.Emoji = interpret.WeatherEmoji(cond.WeatherCode, cond.IsDay)
		out.IsDay = cond.IsDay
	}

	if atm, ok := normalize.ExtractAtmosphere(c.Weather); ok {
		unit := opts.PressureUnit
		if unit == "" {
			unit = interpret.HPa
		}
		pressure := interpret.ConvertPressure(atm.PressureMSL, unit)
		out.Humidity = &atm.Humidity
		out.CloudCover = &atm.CloudCover
		out.Pressure = &pressure
		out.PressureUnit = string(unit)
	}

	if wind, ok := normalize.ExtractWind(c.Weather); ok {
		out.Wind = &Wind{
			SpeedKmh:  toKmh(wind.Speed, wind.SpeedUnit),
			GustsKmh:  toKmh(wind.Gusts, wind.SpeedUnit),
			Direction: interpret.DescribeWindDirection(wind.Direction),
		}
	}

	if aqi, ok := normalize.ExtractAirQualityIndex(c.AirQuality); ok {
		out.AirQuality = &AirQuality{
			EuropeanAQI: aqi.EuropeanAQI,
			USAQI:       aqi.USAQI,
			Level:       interpret.ClassifyAirQuality(aqi.EuropeanAQI),
		}
	}

	if uv, ok := normalize.ExtractUVIndex(c.AirQuality); ok {
		level := interpret.ClassifyUVIndex(uv)
		out.UV = &level
	}

	return out
}

// BuildForecast renders a comprehensive result.
func BuildForecast(result weather.Comprehensive, opts Options) Forecast {
	out := Forecast{
		Location:   LocationLabel(normalize.ExtractLocationInfo(result.Location)),
		Days:       []Day{},
		Hours:      []Hour{},
		AirQuality: []HourAirQuality{},
	}

	if daily, ok := normalize.ExtractDaily(result.Weather); ok {
		for i, date := range daily.Time {
			code := daily.WeatherCode[i]
			out.Days = append(out.Days, Day{
				Date:          date,
				Description:   interpret.WeatherDescription(code),
				Icon:          interpret.WeatherIcon(code, true),
				Max:           interpret.FormatTemperature(daily.TemperatureMax[i], opts.TemperatureUnit, opts.Precision),
				Min:           interpret.FormatTemperature(daily.TemperatureMin[i], opts.TemperatureUnit, opts.Precision),
				UV:            interpret.ClassifyUVIndex(daily.UVIndexMax[i]),
				Precipitation: daily.PrecipitationSum[i],
				WindDirection: interpret.DescribeWindDirection(daily.WindDirectionDominant[i]),
			})
		}
	}

	if hourly, ok := normalize.ExtractHourlyTemperature(result.Weather); ok {
		for i, ts := range hourly.Time {
			out.Hours = append(out.Hours, Hour{
				Time:                ts,
				Temperature:         interpret.FormatTemperature(hourly.Temperature[i], opts.TemperatureUnit, opts.Precision),
				ApparentTemperature: interpret.FormatTemperature(hourly.ApparentTemperature[i], opts.TemperatureUnit, opts.Precision),
			})
		}
	}

	if aq, ok := normalize.ExtractHourlyAirQualityIndex(result.AirQuality); ok {
		for i, ts := range aq.Time {
			out.AirQuality = append(out.AirQuality, HourAirQuality{
				Time:        ts,
				EuropeanAQI: aq.EuropeanAQI[i],
				USAQI:       aq.USAQI[i],
				Level:       interpret.ClassifyAirQuality(aq.EuropeanAQI[i]),
			})
		}
	}

	return out
}

func toKmh(speed float64, unit string) float64 {
	if unit == "m/s" {
		return interpret.ConvertWindSpeed(speed)
	}
	return math.Round(speed)
}
