// Package store persists the last successful reading and the resolved
// coordinates so a restart paints the tray immediately and skips a
// redundant geocoding round-trip.
package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/weathercheck/weathertray/internal/envconfig"
	"github.com/weathercheck/weathertray/internal/geocode"
	"github.com/weathercheck/weathertray/internal/metno"
)

const stateFileName = "state.json"

// maxAge bounds how old a cached observation may be before startup
// ignores it.
const maxAge = 6 * time.Hour

// State is the persisted application state.
type State struct {
	City            string             `json:"city"`
	Coords          *geocode.Coords    `json:"coords,omitempty"`
	LastObservation *metno.Observation `json:"last_observation,omitempty"`
	LastUpdate      time.Time          `json:"last_update"`
}

// Fresh reports whether the cached observation is recent enough to show.
func (st State) Fresh(now time.Time) bool {
	return st.LastObservation != nil && now.Sub(st.LastUpdate) < maxAge
}

// Path returns the state file location.
func Path() string {
	return filepath.Join(envconfig.ConfigDir(), stateFileName)
}

// Load reads the persisted state. A missing or corrupt file yields the
// zero state.
func Load() State {
	var st State

	data, err := os.ReadFile(Path())
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("error reading state file", "path", Path(), "error", err)
		}
		return st
	}

	if err := json.Unmarshal(data, &st); err != nil {
		slog.Warn("error parsing state file", "path", Path(), "error", err)
		return State{}
	}
	return st
}

// Save writes the state file, creating the config directory if needed.
// The file is written to a temp name and renamed so a reader never sees a
// partial write.
func Save(st State) {
	if err := os.MkdirAll(envconfig.ConfigDir(), 0755); err != nil {
		slog.Warn("error creating config dir", "path", envconfig.ConfigDir(), "error", err)
		return
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		slog.Warn("error serializing state", "error", err)
		return
	}

	tmp, err := os.CreateTemp(envconfig.ConfigDir(), stateFileName+".*")
	if err != nil {
		slog.Warn("error creating temp state file", "error", err)
		return
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		slog.Warn("error writing state file", "path", tmp.Name(), "error", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		slog.Warn("error writing state file", "path", tmp.Name(), "error", err)
		return
	}
	if err := os.Rename(tmp.Name(), Path()); err != nil {
		os.Remove(tmp.Name())
		slog.Warn("error replacing state file", "path", Path(), "error", err)
	}
}
