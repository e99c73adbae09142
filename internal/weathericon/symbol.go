// Package weathericon maps MET Norway symbol codes to icon kinds and
// renders the tray icon bitmap with a temperature overlay.
package weathericon

import "strings"

type Kind int

const (
	Alert Kind = iota
	Storm
	Snow
	Showers
	FewClouds
	Overcast
	Clear
)

// String returns the freedesktop-style icon name for the kind, used in
// logs and the details window.
func (k Kind) String() string {
	switch k {
	case Storm:
		return "weather-storm-symbolic"
	case Snow:
		return "weather-snow-symbolic"
	case Showers:
		return "weather-showers-symbolic"
	case FewClouds:
		return "weather-few-clouds-symbolic"
	case Overcast:
		return "weather-overcast-symbolic"
	case Clear:
		return "weather-clear-symbolic"
	default:
		return "weather-severe-alert-symbolic"
	}
}

// Label returns a human-readable condition name.
func (k Kind) Label() string {
	switch k {
	case Storm:
		return "Thunderstorm"
	case Snow:
		return "Snow"
	case Showers:
		return "Rain showers"
	case FewClouds:
		return "Partly cloudy"
	case Overcast:
		return "Overcast"
	case Clear:
		return "Clear sky"
	default:
		return "Unknown conditions"
	}
}

// Ordered: first match wins. Snow keys come before rain so codes like
// "lightsnowshowers_day" pick the snow icon.
var symbolTable = []struct {
	keys []string
	kind Kind
}{
	{[]string{"thunder", "thunderstorm"}, Storm},
	{[]string{"heavysnow", "snow", "lightsnow"}, Snow},
	{[]string{"heavyrain", "lightrain", "rain", "showers"}, Showers},
	{[]string{"partlycloudy", "fair"}, FewClouds},
	{[]string{"cloudy"}, Overcast},
	{[]string{"clearsky"}, Clear},
}

// KindFor maps a symbol code (e.g. "partlycloudy_day") to an icon kind by
// substring lookup. Empty or unrecognized codes map to Alert.
func KindFor(symbolCode string) Kind {
	if symbolCode == "" {
		return Alert
	}
	s := strings.ToLower(symbolCode)
	for _, entry := range symbolTable {
		for _, key := range entry.keys {
			if strings.Contains(s, key) {
				return entry.kind
			}
		}
	}
	return Alert
}
