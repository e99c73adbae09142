// Package tray wires the system-tray icon, menu and details window
// together with the periodic refresh loop.
package tray

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/weathercheck/weathertray/internal/envconfig"
	"github.com/weathercheck/weathertray/internal/geocode"
	"github.com/weathercheck/weathertray/internal/metno"
	"github.com/weathercheck/weathertray/internal/notify"
	"github.com/weathercheck/weathertray/internal/store"
	"github.com/weathercheck/weathertray/internal/weathericon"
)

const appID = "com.weathercheck.weathertray"

// Options configures the tray app. Zero fields fall back to envconfig.
type Options struct {
	City    string
	Refresh time.Duration
}

// App is the tray application. All mutable state is owned by the fyne
// event loop; the refresh worker hands results over with fyne.Do.
type App struct {
	fyneApp fyne.App
	desk    desktop.App

	geo      *geocode.Client
	forecast *metno.Client

	city    string
	coords  geocode.Coords
	refresh time.Duration

	// coordsOK records whether coords came from a successful lookup or a
	// prior cache hit. Fallback coordinates are never written back to the
	// cache, so the next start retries geocoding.
	coordsOK bool

	obs        *metno.Observation
	hours      []metno.HourPoint
	lastUpdate time.Time
	lastErr    error
	lastKind   weathericon.Kind

	details     fyne.Window
	detailsText *widget.Label

	refreshCh chan struct{}
	stopCh    chan struct{}
}

func New(opts Options) (*App, error) {
	fyneApp := app.NewWithID(appID)
	desk, ok := fyneApp.(desktop.App)
	if !ok {
		return nil, fmt.Errorf("the current driver has no system tray support")
	}

	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = envconfig.RefreshInterval()
	}

	return &App{
		fyneApp:   fyneApp,
		desk:      desk,
		geo:       geocode.NewClient(),
		forecast:  metno.NewClient(),
		city:      opts.City,
		refresh:   refresh,
		lastKind:  weathericon.Alert,
		refreshCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}, nil
}

// Run resolves the city and coordinates, seeds the tray from any cached
// state, starts the refresh loop and blocks in the GUI event loop.
func (a *App) Run() {
	st := store.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if a.city == "" {
		a.city = a.geo.DetectCity(ctx)
	}

	if st.City == a.city && st.Coords != nil {
		a.coords = *st.Coords
		a.coordsOK = true
	} else {
		coords, err := a.geo.Lookup(ctx, a.city)
		if err != nil {
			slog.Warn("geocoding failed, using fallback coordinates",
				"city", a.city, "lat", coords.Lat, "lon", coords.Lon, "error", err)
		}
		a.coords = coords
		a.coordsOK = err == nil
	}
	cancel()
	slog.Info("starting", "city", a.city, "lat", a.coords.Lat, "lon", a.coords.Lon,
		"refresh", a.refresh)

	if st.City == a.city && st.Fresh(time.Now()) {
		a.obs = st.LastObservation
		a.lastUpdate = st.LastUpdate
		a.lastKind = weathericon.KindFor(a.obs.SymbolCode)
	}
	a.applyState()

	a.fyneApp.Lifecycle().SetOnStopped(func() { close(a.stopCh) })
	go a.refreshLoop()
	a.requestRefresh()

	a.fyneApp.Run()
}

// requestRefresh asks the worker for a refresh. Requests arriving while
// one is already pending coalesce.
func (a *App) requestRefresh() {
	select {
	case a.refreshCh <- struct{}{}:
	default:
	}
}

func (a *App) refreshLoop() {
	ticker := time.NewTicker(a.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.doRefresh()
		case <-a.refreshCh:
			a.doRefresh()
		case <-a.stopCh:
			return
		}
	}
}

// doRefresh runs on the worker goroutine; results are applied on the
// event loop.
func (a *App) doRefresh() {
	slog.Debug("refreshing forecast", "city", a.city)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fc, err := a.forecast.Fetch(ctx, a.coords.Lat, a.coords.Lon)
	var obs metno.Observation
	if err == nil {
		obs, err = fc.Current()
	}
	if err != nil {
		slog.Warn("refresh failed", "city", a.city, "error", err)
		fyne.Do(func() {
			a.lastErr = err
			a.applyState()
		})
		return
	}

	hours := fc.Hourly(6)
	slog.Info("forecast updated", "city", a.city, "symbol", obs.SymbolCode,
		"temperature", obs.TempLabel())
	fyne.Do(func() {
		a.setObservation(obs, hours)
	})
}

func (a *App) setObservation(obs metno.Observation, hours []metno.HourPoint) {
	hadObs := a.obs != nil
	prevKind := a.lastKind

	a.obs = &obs
	a.hours = hours
	a.lastErr = nil
	a.lastUpdate = time.Now()
	a.lastKind = weathericon.KindFor(obs.SymbolCode)

	if hadObs && prevKind != a.lastKind {
		switch {
		case a.lastKind == weathericon.Storm:
			a.sendNotification("Storm warning", fmt.Sprintf("Thunderstorms expected in %s.", a.city))
		case prevKind == weathericon.Storm:
			a.sendNotification("Storm passed", fmt.Sprintf("Conditions in %s: %s.", a.city, a.lastKind.Label()))
		}
	}

	a.applyState()
	store.Save(a.stateSnapshot())
}

// stateSnapshot builds the state to persist. Coordinates are only cached
// when they are known to belong to the city.
func (a *App) stateSnapshot() store.State {
	st := store.State{
		City:            a.city,
		LastObservation: a.obs,
		LastUpdate:      a.lastUpdate,
	}
	if a.coordsOK {
		coords := a.coords
		st.Coords = &coords
	}
	return st
}

func (a *App) sendNotification(title, message string) {
	if err := notify.Send(a.fyneApp, title, message); err != nil {
		slog.Warn("failed to show notification", "error", err)
	}
}

// applyState re-renders the icon and reapplies the menu. A failed refresh
// keeps the previous reading; only the status line changes.
func (a *App) applyState() {
	label := "…"
	if a.obs != nil {
		label = a.obs.TempLabel()
	}

	if data := weathericon.Render(a.lastKind, label); data != nil {
		a.desk.SetSystemTrayIcon(fyne.NewStaticResource("weathertray.png", data))
	}
	a.desk.SetSystemTrayMenu(a.buildMenu())
	a.refreshDetails()
}

// buildMenu assembles the tray menu. fyne appends its own Quit item.
func (a *App) buildMenu() *fyne.Menu {
	status := fmt.Sprintf("Weather — %s", a.city)
	if a.lastErr != nil {
		status += " · error"
	} else if a.obs != nil {
		status += " · " + a.obs.TempLabel()
	}
	statusItem := fyne.NewMenuItem(status, nil)
	statusItem.Disabled = true

	return fyne.NewMenu("Weather",
		statusItem,
		fyne.NewMenuItem("Refresh now", a.requestRefresh),
		fyne.NewMenuItem("Details…", a.showDetails),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open weather-check", a.openCLI),
	)
}

// openCLI launches the companion CLI in the configured terminal, falling
// back to a direct spawn when no terminal is available.
func (a *App) openCLI() {
	cli := envconfig.CLICommand()
	term := envconfig.Terminal()

	if err := exec.Command(term, "--", cli).Start(); err != nil {
		slog.Debug("terminal launch failed, spawning directly", "terminal", term, "error", err)
		if err := exec.Command(cli).Start(); err != nil {
			slog.Warn("failed to launch CLI", "command", cli, "error", err)
		}
	}
}
