package envconfig

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Var reads an environment variable, trimming whitespace and surrounding
// quotes so values copied out of shell profiles behave.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// RefreshInterval returns how often the forecast is refetched. Configured in
// seconds via WEATHER_TRAY_REFRESH. Default is 10 minutes; non-positive or
// unparsable values keep the default.
func RefreshInterval() time.Duration {
	if s := Var("WEATHER_TRAY_REFRESH"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return 10 * time.Minute
}

// City returns the configured city. WEATHER_TRAY_CITY takes precedence over
// the plain CITY variable. Empty means autodetect.
func City() string {
	if s := Var("WEATHER_TRAY_CITY"); s != "" {
		return s
	}
	return Var("CITY")
}

// CLICommand returns the companion CLI launched from the tray menu.
// Configured via WEATHER_TRAY_CLI.
func CLICommand() string {
	if s := Var("WEATHER_TRAY_CLI"); s != "" {
		return s
	}
	return "weather-check"
}

// Terminal returns the terminal emulator used to launch the CLI.
func Terminal() string {
	if s := Var("TERMINAL"); s != "" {
		return s
	}
	return "gnome-terminal"
}

// LogFormat returns "json" or "text". Configured via WEATHER_TRAY_LOG_FORMAT.
func LogFormat() string {
	if strings.EqualFold(Var("WEATHER_TRAY_LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}

// Debug reports whether debug logging is enabled via WEATHER_TRAY_DEBUG.
func Debug() bool {
	s := Var("WEATHER_TRAY_DEBUG")
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return true
	}
	return b
}

// GeocodeURL returns the base URL of the Nominatim geocoding service.
func GeocodeURL() string {
	if s := Var("WEATHER_TRAY_GEOCODE_URL"); s != "" {
		return s
	}
	return "https://nominatim.openstreetmap.org"
}

// IPInfoURL returns the base URL of the IP geolocation service used for
// city autodetection.
func IPInfoURL() string {
	if s := Var("WEATHER_TRAY_IPINFO_URL"); s != "" {
		return s
	}
	return "https://ipinfo.io"
}

// ForecastURL returns the base URL of the MET Norway weather API.
func ForecastURL() string {
	if s := Var("WEATHER_TRAY_FORECAST_URL"); s != "" {
		return s
	}
	return "https://api.met.no"
}

// ConfigDir returns the directory for persisted state. It first checks
// WEATHER_TRAY_CONFIG_DIR, then the user's configuration directory, and
// falls back to a dotdir in the home directory.
func ConfigDir() string {
	if dir := Var("WEATHER_TRAY_CONFIG_DIR"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "weathertray")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".weathertray")
	}
	return ".weathertray"
}
