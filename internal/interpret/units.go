package interpret

import (
	"math"
	"strconv"
)

// PressureUnit is a target unit for ConvertPressure.
type PressureUnit string

const (
	HPa  PressureUnit = "hPa"
	MmHg PressureUnit = "mmHg"
	InHg PressureUnit = "inHg"
)

// TemperatureUnit is a target unit for FormatTemperature.
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "C"
	Fahrenheit TemperatureUnit = "F"
)

// ConvertWindSpeed converts metres per second to whole kilometres per hour.
func ConvertWindSpeed(ms float64) float64 {
	return math.Round(ms * 3.6)
}

// ConvertPressure converts a hectopascal reading. mmHg is rounded to an integer,
// inHg to two decimals. hPa and unrecognised units return the input unchanged.
func ConvertPressure(hpa float64, unit PressureUnit) float64 {
	switch unit {
	case MmHg:
		return math.Round(hpa * 0.750062)
	case InHg:
		return math.Round(hpa*0.02953*100) / 100
	default:
		return hpa
	}
}

// FormatTemperature renders a Celsius reading in the requested unit. The Celsius
// value is rounded to precision decimals before any Fahrenheit conversion, and
// the converted value is rounded again. Trailing zeros are dropped.
func FormatTemperature(celsius float64, unit TemperatureUnit, precision int) string {
	if precision < 0 {
		precision = 0
	}
	v := roundTo(celsius, precision)
	suffix := "°C"
	if unit == Fahrenheit {
		v = roundTo(v*9/5+32, precision)
		suffix = "°F"
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + suffix
}

func roundTo(v float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(v*p) / p
}
