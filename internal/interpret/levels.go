package interpret

// AirQualityLevel names one of the six European AQI bands.
type AirQualityLevel string

const (
	AirQualityGood          AirQualityLevel = "Good"
	AirQualityFair          AirQualityLevel = "Fair"
	AirQualityModerate      AirQualityLevel = "Moderate"
	AirQualityPoor          AirQualityLevel = "Poor"
	AirQualityVeryPoor      AirQualityLevel = "VeryPoor"
	AirQualityExtremelyPoor AirQualityLevel = "ExtremelyPoor"
)

// AirQuality is the classification of an AQI value.
type AirQuality struct {
	Level       AirQualityLevel `json:"level"`
	Description string          `json:"description"`
	Color       string          `json:"color"`
}

type aqiBand struct {
	upper float64
	AirQuality
}

// Upper bounds are inclusive.
var aqiBands = []aqiBand{
	{20, AirQuality{AirQualityGood, "Good", "#00e400"}},
	{40, AirQuality{AirQualityFair, "Fair", "#ffff00"}},
	{60, AirQuality{AirQualityModerate, "Moderate", "#ff7e00"}},
	{80, AirQuality{AirQualityPoor, "Poor", "#ff0000"}},
	{100, AirQuality{AirQualityVeryPoor, "Very poor", "#8f3f97"}},
}

var extremelyPoor = AirQuality{AirQualityExtremelyPoor, "Extremely poor", "#7e0023"}

// ClassifyAirQuality maps an AQI value onto its band. Anything above 100,
// including NaN, is ExtremelyPoor.
func ClassifyAirQuality(aqi float64) AirQuality {
	for _, b := range aqiBands {
		if aqi <= b.upper {
			return b.AirQuality
		}
	}
	return extremelyPoor
}

// UVLevel names one of the five UV index bands.
type UVLevel string

const (
	UVLow      UVLevel = "Low"
	UVModerate UVLevel = "Moderate"
	UVHigh     UVLevel = "High"
	UVVeryHigh UVLevel = "VeryHigh"
	UVExtreme  UVLevel = "Extreme"
)

// UVIndex is the classification of a UV index reading with its advisory.
type UVIndex struct {
	Level          UVLevel `json:"level"`
	Description    string  `json:"description"`
	Recommendation string  `json:"recommendation"`
}

type uvBand struct {
	below float64
	UVIndex
}

// Upper bounds are exclusive.
var uvBands = []uvBand{
	{3, UVIndex{UVLow, "Minimal risk", "No protection needed."}},
	{6, UVIndex{UVModerate, "Low risk", "Use SPF 15+ sunscreen."}},
	{8, UVIndex{UVHigh, "Moderate risk", "Use SPF 30+ sunscreen and sunglasses."}},
	{11, UVIndex{UVVeryHigh, "High risk", "Avoid the sun between 10h and 16h, use SPF 50+."}},
}

var extremeUV = UVIndex{UVExtreme, "Extreme risk", "Avoid sun exposure and stay in the shade."}

// ClassifyUVIndex maps a UV index reading onto its band.
func ClassifyUVIndex(uv float64) UVIndex {
	for _, b := range uvBands {
		if uv < b.below {
			return b.UVIndex
		}
	}
	return extremeUV
}
