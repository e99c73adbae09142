package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/weathercheck/weathertray/internal/geocode"
	"github.com/weathercheck/weathertray/internal/metno"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("WEATHER_TRAY_CONFIG_DIR", t.TempDir())

	temp := 11.6
	st := State{
		City:   "Sofia",
		Coords: &geocode.Coords{Lat: 42.6977, Lon: 23.3219},
		LastObservation: &metno.Observation{
			Time:             time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			AirTemperature:   &temp,
			RelativeHumidity: 58.3,
			SymbolCode:       "partlycloudy_day",
		},
		LastUpdate: time.Date(2024, 3, 1, 12, 1, 0, 0, time.UTC),
	}
	Save(st)

	got := Load()
	require.Equal(t, "Sofia", got.City)
	require.NotNil(t, got.Coords)
	require.InDelta(t, 42.6977, got.Coords.Lat, 1e-9)
	require.NotNil(t, got.LastObservation)
	require.NotNil(t, got.LastObservation.AirTemperature)
	require.InDelta(t, 11.6, *got.LastObservation.AirTemperature, 1e-9)
	require.Equal(t, "partlycloudy_day", got.LastObservation.SymbolCode)
	require.True(t, got.LastUpdate.Equal(st.LastUpdate))
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("WEATHER_TRAY_CONFIG_DIR", t.TempDir())

	got := Load()
	require.Empty(t, got.City)
	require.Nil(t, got.LastObservation)
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WEATHER_TRAY_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFileName), []byte("{nope"), 0644))

	got := Load()
	require.Empty(t, got.City)
}

func TestSaveConcurrent(t *testing.T) {
	t.Setenv("WEATHER_TRAY_CONFIG_DIR", t.TempDir())

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			Save(State{City: "Sofia", LastUpdate: time.Now().Add(time.Duration(n) * time.Second)})
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	// Whichever write won, the file must parse.
	got := Load()
	require.Equal(t, "Sofia", got.City)
}

func TestFresh(t *testing.T) {
	now := time.Now()
	obs := &metno.Observation{}

	require.False(t, State{}.Fresh(now))
	require.True(t, State{LastObservation: obs, LastUpdate: now.Add(-time.Hour)}.Fresh(now))
	require.False(t, State{LastObservation: obs, LastUpdate: now.Add(-7 * time.Hour)}.Fresh(now))
	require.False(t, State{LastUpdate: now}.Fresh(now))
}
