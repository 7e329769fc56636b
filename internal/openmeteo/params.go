package openmeteo

import "strings"

// Field lists requested from the upstream. They are sent whole on every call.
var (
	CurrentWeatherFields = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"apparent_temperature",
		"is_day",
		"precipitation",
		"rain",
		"showers",
		"snowfall",
		"weather_code",
		"cloud_cover",
		"pressure_msl",
		"surface_pressure",
		"wind_speed_10m",
		"wind_direction_10m",
		"wind_gusts_10m",
	}

	HourlyWeatherFields = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"apparent_temperature",
		"precipitation_probability",
		"precipitation",
		"rain",
		"showers",
		"snowfall",
		"weather_code",
		"pressure_msl",
		"surface_pressure",
		"cloud_cover",
		"cloud_cover_low",
		"cloud_cover_mid",
		"cloud_cover_high",
		"visibility",
		"evapotranspiration",
		"et0_fao_evapotranspiration",
		"vapour_pressure_deficit",
		"wind_speed_10m",
		"wind_direction_10m",
		"wind_gusts_10m",
		"uv_index",
		"uv_index_clear_sky",
		"is_day",
		"shortwave_radiation",
		"direct_radiation",
		"diffuse_radiation",
		"direct_normal_irradiance",
		"sunshine_duration",
	}

	DailyWeatherFields = []string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"apparent_temperature_max",
		"apparent_temperature_min",
		"sunrise",
		"sunset",
		"daylight_duration",
		"sunshine_duration",
		"uv_index_max",
		"uv_index_clear_sky_max",
		"precipitation_sum",
		"rain_sum",
		"showers_sum",
		"snowfall_sum",
		"precipitation_hours",
		"precipitation_probability_max",
		"wind_speed_10m_max",
		"wind_gusts_10m_max",
		"wind_direction_10m_dominant",
		"shortwave_radiation_sum",
		"et0_fao_evapotranspiration",
	}

	CurrentAirQualityFields = []string{
		"european_aqi",
		"us_aqi",
		"pm10",
		"pm2_5",
		"carbon_monoxide",
		"nitrogen_dioxide",
		"sulphur_dioxide",
		"ozone",
		"aerosol_optical_depth",
		"dust",
		"uv_index",
		"uv_index_clear_sky",
	}

	HourlyAirQualityFields = []string{
		"pm10",
		"pm2_5",
		"carbon_monoxide",
		"nitrogen_dioxide",
		"sulphur_dioxide",
		"ozone",
		"aerosol_optical_depth",
		"dust",
		"uv_index",
		"uv_index_clear_sky",
		"european_aqi",
		"european_aqi_pm2_5",
		"european_aqi_pm10",
		"european_aqi_nitrogen_dioxide",
		"european_aqi_ozone",
		"european_aqi_sulphur_dioxide",
		"us_aqi",
		"us_aqi_pm2_5",
		"us_aqi_pm10",
		"us_aqi_nitrogen_dioxide",
		"us_aqi_ozone",
		"us_aqi_sulphur_dioxide",
		"us_aqi_carbon_monoxide",
	}
)

func csv(fields []string) string {
	return strings.Join(fields, ",")
}
