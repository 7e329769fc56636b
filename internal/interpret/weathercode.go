package interpret

// UnknownCondition is returned by WeatherDescription for codes outside the WMO table.
const UnknownCondition = "unknown condition"

var descriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Light rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Light snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Light rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Light snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with light hail",
	99: "Thunderstorm with heavy hail",
}

// dayNight holds the icon token for a code in daylight and at night.
type dayNight struct {
	day, night string
}

func same(token string) dayNight { return dayNight{token, token} }

var icons = map[int]dayNight{
	0:  {"clear_day", "bedtime"},
	1:  {"wb_sunny", "wb_twilight"},
	2:  {"partly_cloudy_day", "partly_cloudy_night"},
	3:  {"filter_drama", "cloud"},
	45: same("foggy"),
	48: same("mist"),
	51: same("grain"),
	53: same("weather_mix"),
	55: same("water_drop"),
	56: same("ac_unit"),
	57: same("severe_cold"),
	61: same("rainy_light"),
	63: same("rainy"),
	65: same("rainy_heavy"),
	66: same("weather_mix"),
	67: same("ac_unit"),
	71: same("weather_snowy"),
	73: same("snowing"),
	75: same("severe_cold"),
	77: same("weather_hail"),
	80: same("rainy_light"),
	81: same("rainy"),
	82: same("rainy_heavy"),
	85: same("weather_snowy"),
	86: same("snowing"),
	95: same("thunderstorm"),
	96: same("weather_hail"),
	99: same("bolt"),
}

var fallbackIcon = dayNight{"partly_cloudy_day", "partly_cloudy_night"}

var emojis = map[int]dayNight{
	0:  {"☀️", "🌙"},
	1:  {"🌤️", "🌙"},
	2:  {"⛅", "☁️"},
	3:  same("☁️"),
	45: same("🌫️"),
	48: same("🌫️"),
	51: same("🌦️"),
	53: same("🌦️"),
	55: same("🌧️"),
	56: same("🌨️"),
	57: same("🌨️"),
	61: same("🌧️"),
	63: same("🌧️"),
	65: same("🌧️"),
	66: same("🌨️"),
	67: same("🌨️"),
	71: same("🌨️"),
	73: same("❄️"),
	75: same("❄️"),
	77: same("🌨️"),
	80: same("🌦️"),
	81: same("🌧️"),
	82: same("⛈️"),
	85: same("🌨️"),
	86: same("❄️"),
	95: same("⛈️"),
	96: same("⛈️"),
	99: same("⛈️"),
}

var fallbackEmoji = dayNight{"⛅", "🌙"}

func (d dayNight) pick(isDay bool) string {
	if isDay {
		return d.day
	}
	return d.night
}

// WeatherDescription returns the human readable label for a WMO weather code.
func WeatherDescription(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return UnknownCondition
}

// WeatherIcon returns the icon token for a WMO weather code. Unknown codes fall
// back to the partly cloudy token for the given time of day.
func WeatherIcon(code int, isDay bool) string {
	if icon, ok := icons[code]; ok {
		return icon.pick(isDay)
	}
	return fallbackIcon.pick(isDay)
}

// WeatherEmoji is the emoji counterpart of WeatherIcon.
func WeatherEmoji(code int, isDay bool) string {
	if e, ok := emojis[code]; ok {
		return e.pick(isDay)
	}
	return fallbackEmoji.pick(isDay)
}

// KnownWeatherCodes lists every code with a mapped description, in ascending order.
func KnownWeatherCodes() []int {
	return []int{0, 1, 2, 3, 45, 48, 51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 71, 73, 75, 77, 80, 81, 82, 85, 86, 95, 96, 99}
}
