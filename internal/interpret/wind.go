package interpret

import "math"

var cardinals = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

var cardinalNames = [8]string{"North", "Northeast", "East", "Southeast", "South", "Southwest", "West", "Northwest"}

// WindDirectionInfo is a bearing normalised into [0, 360) with its compass point.
type WindDirectionInfo struct {
	Degrees     float64 `json:"degrees"`
	Cardinal    string  `json:"cardinal"`
	Description string  `json:"description"`
}

// normalizeDegrees folds any bearing into [0, 360). Non-finite input is treated as 0.
func normalizeDegrees(degrees float64) float64 {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return 0
	}
	d := math.Mod(math.Mod(degrees, 360)+360, 360)
	if d == 0 {
		return 0 // drop negative zero
	}
	return d
}

func cardinalIndex(normalized float64) int {
	return int(math.Round(normalized/45)) % 8
}

// WindDirection returns the 8-point compass abbreviation for a bearing in degrees.
func WindDirection(degrees float64) string {
	return cardinals[cardinalIndex(normalizeDegrees(degrees))]
}

// DescribeWindDirection returns the normalised bearing with its abbreviation and full name.
func DescribeWindDirection(degrees float64) WindDirectionInfo {
	d := normalizeDegrees(degrees)
	i := cardinalIndex(d)
	return WindDirectionInfo{
		Degrees:     d,
		Cardinal:    cardinals[i],
		Description: cardinalNames[i],
	}
}
