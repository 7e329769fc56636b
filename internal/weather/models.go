package weather

import (
	"github.com/i474232898/city-weather/internal/openmeteo"
)

// Coordinates is a resolved position. It is never modified after resolution.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationInfo describes a place. The optional fields stay nil when the
// geocoding provider omits them.
type LocationInfo struct {
	Name        string  `json:"name"`
	Country     *string `json:"country,omitempty"`
	CountryCode *string `json:"countryCode,omitempty"`
	Admin1      *string `json:"admin1,omitempty"`
}

// ResolvedCity is the first geocoding match for a search term.
type ResolvedCity struct {
	Coordinates
	LocationInfo
}

// Key returns the display key of the city: its name and country code.
func (c ResolvedCity) Key() string {
	if c.CountryCode == nil {
		return c.Name
	}
	return c.Name + ":" + *c.CountryCode
}

// Conditions pairs the current weather and air-quality readings for a position.
type Conditions struct {
	Weather    *openmeteo.ForecastResponse   `json:"weather"`
	AirQuality *openmeteo.AirQualityResponse `json:"airQuality"`
}

// Comprehensive is the result of resolving a city and fetching its detailed
// forecast and air-quality series. It is built per call and never cached.
type Comprehensive struct {
	Location   ResolvedCity                  `json:"location"`
	Weather    *openmeteo.ForecastResponse   `json:"weather"`
	AirQuality *openmeteo.AirQualityResponse `json:"airQuality"`
}

func cityFromResult(r openmeteo.GeocodingResult) ResolvedCity {
	return ResolvedCity{
		Coordinates: Coordinates{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
		LocationInfo: LocationInfo{
			Name:        r.Name,
			Country:     r.Country,
			CountryCode: r.CountryCode,
			Admin1:      r.Admin1,
		},
	}
}
