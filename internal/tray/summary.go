package tray

import (
	"fmt"
	"strings"
	"time"

	"github.com/weathercheck/weathertray/internal/metno"
	"github.com/weathercheck/weathertray/internal/weathericon"
)

// summaryText formats the details window content. Kept free of GUI types
// so it can be tested directly.
func summaryText(city string, obs *metno.Observation, hours []metno.HourPoint, updated time.Time, lastErr error) string {
	var b strings.Builder

	if obs == nil {
		fmt.Fprintf(&b, "Weather — %s\n\nNo data yet.\n", city)
		if lastErr != nil {
			fmt.Fprintf(&b, "\nLast refresh failed: %v\n", lastErr)
		}
		return b.String()
	}

	kind := weathericon.KindFor(obs.SymbolCode)
	fmt.Fprintf(&b, "%s · %s\n\n", city, kind.Label())
	fmt.Fprintf(&b, "Temperature    %s\n", obs.TempLabel())
	fmt.Fprintf(&b, "Humidity       %.0f%%\n", obs.RelativeHumidity)
	fmt.Fprintf(&b, "Wind           %.1f m/s from %.0f°\n", obs.WindSpeed, obs.WindFromDirection)
	fmt.Fprintf(&b, "Pressure       %.1f hPa\n", obs.PressureHPa)
	fmt.Fprintf(&b, "Precipitation  %.1f mm (next hour)\n", obs.Precipitation)

	if len(hours) > 0 {
		b.WriteString("\nNext hours:\n")
		for _, h := range hours {
			fmt.Fprintf(&b, "  %s  %5s  %-24s %4.1f mm\n",
				h.Time.Local().Format("15:04"),
				metno.FormatTemp(h.AirTemperature),
				h.SymbolCode,
				h.Precipitation)
		}
	}

	if !updated.IsZero() {
		fmt.Fprintf(&b, "\nUpdated %s\n", updated.Local().Format("15:04:05"))
	}
	if lastErr != nil {
		fmt.Fprintf(&b, "Last refresh failed: %v\n", lastErr)
	}
	return b.String()
}
