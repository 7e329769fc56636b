package openmeteo

// GeocodingResponse is the payload of /v1/search. Results is nil when the
// upstream omits the field, which it does when nothing matches.
type GeocodingResponse struct {
	Results []GeocodingResult `json:"results,omitempty"`
}

// GeocodingResult is a single place match.
type GeocodingResult struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Elevation   float64 `json:"elevation,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
	Population  int64   `json:"population,omitempty"`
	Country     *string `json:"country,omitempty"`
	CountryCode *string `json:"country_code,omitempty"`
	Admin1      *string `json:"admin1,omitempty"`
}

// Metadata is shared by the forecast and air-quality payloads.
type Metadata struct {
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	GenerationTimeMs     float64 `json:"generationtime_ms"`
	UTCOffsetSeconds     int     `json:"utc_offset_seconds"`
	Timezone             string  `json:"timezone"`
	TimezoneAbbreviation string  `json:"timezone_abbreviation"`
	Elevation            float64 `json:"elevation"`
}

// ForecastResponse is the payload of /v1/forecast. Any of the data blocks may be
// absent depending on the query.
type ForecastResponse struct {
	Metadata
	CurrentUnits map[string]string `json:"current_units,omitempty"`
	Current      *CurrentWeather   `json:"current,omitempty"`
	HourlyUnits  map[string]string `json:"hourly_units,omitempty"`
	Hourly       *HourlyWeather    `json:"hourly,omitempty"`
	DailyUnits   map[string]string `json:"daily_units,omitempty"`
	Daily        *DailyWeather     `json:"daily,omitempty"`
}

// CurrentWeather is a point-in-time reading.
type CurrentWeather struct {
	Time                string  `json:"time"`
	Interval            int     `json:"interval"`
	Temperature         float64 `json:"temperature_2m"`
	RelativeHumidity    float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	IsDay               int     `json:"is_day"`
	Precipitation       float64 `json:"precipitation"`
	Rain                float64 `json:"rain"`
	Showers             float64 `json:"showers"`
	Snowfall            float64 `json:"snowfall"`
	WeatherCode         int     `json:"weather_code"`
	CloudCover          float64 `json:"cloud_cover"`
	PressureMSL         float64 `json:"pressure_msl"`
	SurfacePressure     float64 `json:"surface_pressure"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	WindDirection       float64 `json:"wind_direction_10m"`
	WindGusts           float64 `json:"wind_gusts_10m"`
}

// HourlyWeather holds parallel arrays indexed by Time.
type HourlyWeather struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	RelativeHumidity         []float64 `json:"relative_humidity_2m"`
	ApparentTemperature      []float64 `json:"apparent_temperature"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	Precipitation            []float64 `json:"precipitation"`
	Rain                     []float64 `json:"rain"`
	Showers                  []float64 `json:"showers"`
	Snowfall                 []float64 `json:"snowfall"`
	WeatherCode              []int     `json:"weather_code"`
	PressureMSL              []float64 `json:"pressure_msl"`
	SurfacePressure          []float64 `json:"surface_pressure"`
	CloudCover               []float64 `json:"cloud_cover"`
	CloudCoverLow            []float64 `json:"cloud_cover_low"`
	CloudCoverMid            []float64 `json:"cloud_cover_mid"`
	CloudCoverHigh           []float64 `json:"cloud_cover_high"`
	Visibility               []float64 `json:"visibility"`
	Evapotranspiration       []float64 `json:"evapotranspiration"`
	ET0FAOEvapotranspiration []float64 `json:"et0_fao_evapotranspiration"`
	VapourPressureDeficit    []float64 `json:"vapour_pressure_deficit"`
	WindSpeed                []float64 `json:"wind_speed_10m"`
	WindDirection            []float64 `json:"wind_direction_10m"`
	WindGusts                []float64 `json:"wind_gusts_10m"`
	UVIndex                  []float64 `json:"uv_index"`
	UVIndexClearSky          []float64 `json:"uv_index_clear_sky"`
	IsDay                    []int     `json:"is_day"`
	ShortwaveRadiation       []float64 `json:"shortwave_radiation"`
	DirectRadiation          []float64 `json:"direct_radiation"`
	DiffuseRadiation         []float64 `json:"diffuse_radiation"`
	DirectNormalIrradiance   []float64 `json:"direct_normal_irradiance"`
	SunshineDuration         []float64 `json:"sunshine_duration"`
}

// DailyWeather holds parallel arrays indexed by Time (one entry per day).
type DailyWeather struct {
	Time                        []string  `json:"time"`
	WeatherCode                 []int     `json:"weather_code"`
	TemperatureMax              []float64 `json:"temperature_2m_max"`
	TemperatureMin              []float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax      []float64 `json:"apparent_temperature_max"`
	ApparentTemperatureMin      []float64 `json:"apparent_temperature_min"`
	Sunrise                     []string  `json:"sunrise"`
	Sunset                      []string  `json:"sunset"`
	DaylightDuration            []float64 `json:"daylight_duration"`
	SunshineDuration            []float64 `json:"sunshine_duration"`
	UVIndexMax                  []float64 `json:"uv_index_max"`
	UVIndexClearSkyMax          []float64 `json:"uv_index_clear_sky_max"`
	PrecipitationSum            []float64 `json:"precipitation_sum"`
	RainSum                     []float64 `json:"rain_sum"`
	ShowersSum                  []float64 `json:"showers_sum"`
	SnowfallSum                 []float64 `json:"snowfall_sum"`
	PrecipitationHours          []float64 `json:"precipitation_hours"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	WindSpeedMax                []float64 `json:"wind_speed_10m_max"`
	WindGustsMax                []float64 `json:"wind_gusts_10m_max"`
	WindDirectionDominant       []float64 `json:"wind_direction_10m_dominant"`
	ShortwaveRadiationSum       []float64 `json:"shortwave_radiation_sum"`
	ET0FAOEvapotranspiration    []float64 `json:"et0_fao_evapotranspiration"`
}

// AirQualityResponse is the payload of /v1/air-quality.
type AirQualityResponse struct {
	Metadata
	CurrentUnits map[string]string  `json:"current_units,omitempty"`
	Current      *CurrentAirQuality `json:"current,omitempty"`
	HourlyUnits  map[string]string  `json:"hourly_units,omitempty"`
	Hourly       *HourlyAirQuality  `json:"hourly,omitempty"`
}

// CurrentAirQuality is a point-in-time pollutant reading.
type CurrentAirQuality struct {
	Time                string  `json:"time"`
	Interval            int     `json:"interval"`
	EuropeanAQI         float64 `json:"european_aqi"`
	USAQI               float64 `json:"us_aqi"`
	PM10                float64 `json:"pm10"`
	PM25                float64 `json:"pm2_5"`
	CarbonMonoxide      float64 `json:"carbon_monoxide"`
	NitrogenDioxide     float64 `json:"nitrogen_dioxide"`
	SulphurDioxide      float64 `json:"sulphur_dioxide"`
	Ozone               float64 `json:"ozone"`
	AerosolOpticalDepth float64 `json:"aerosol_optical_depth"`
	Dust                float64 `json:"dust"`
	UVIndex             float64 `json:"uv_index"`
	UVIndexClearSky     float64 `json:"uv_index_clear_sky"`
}

// HourlyAirQuality holds parallel arrays indexed by Time.
type HourlyAirQuality struct {
	Time                       []string  `json:"time"`
	PM10                       []float64 `json:"pm10"`
	PM25                       []float64 `json:"pm2_5"`
	CarbonMonoxide             []float64 `json:"carbon_monoxide"`
	NitrogenDioxide            []float64 `json:"nitrogen_dioxide"`
	SulphurDioxide             []float64 `json:"sulphur_dioxide"`
	Ozone                      []float64 `json:"ozone"`
	AerosolOpticalDepth        []float64 `json:"aerosol_optical_depth"`
	Dust                       []float64 `json:"dust"`
	UVIndex                    []float64 `json:"uv_index"`
	UVIndexClearSky            []float64 `json:"uv_index_clear_sky"`
	EuropeanAQI                []float64 `json:"european_aqi"`
	EuropeanAQIPM25            []float64 `json:"european_aqi_pm2_5"`
	EuropeanAQIPM10            []float64 `json:"european_aqi_pm10"`
	EuropeanAQINitrogenDioxide []float64 `json:"european_aqi_nitrogen_dioxide"`
	EuropeanAQIOzone           []float64 `json:"european_aqi_ozone"`
	EuropeanAQISulphurDioxide  []float64 `json:"european_aqi_sulphur_dioxide"`
	USAQI                      []float64 `json:"us_aqi"`
	USAQIPM25                  []float64 `json:"us_aqi_pm2_5"`
	USAQIPM10                  []float64 `json:"us_aqi_pm10"`
	USAQINitrogenDioxide       []float64 `json:"us_aqi_nitrogen_dioxide"`
	USAQIOzone                 []float64 `json:"us_aqi_ozone"`
	USAQISulphurDioxide        []float64 `json:"us_aqi_sulphur_dioxide"`
	USAQICarbonMonoxide        []float64 `json:"us_aqi_carbon_monoxide"`
}
