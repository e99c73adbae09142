// Package metno fetches the MET Norway locationforecast compact document
// and normalizes the bits the tray widget needs.
package metno

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/weathercheck/weathertray/internal/envconfig"
)

const (
	compactPath = "/weatherapi/locationforecast/2.0/compact"

	// api.met.no rejects requests without an identifying User-Agent.
	defaultUserAgent = "weathertray (github.com/weathercheck/weathertray)"
)

type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    envconfig.ForecastURL(),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Forecast mirrors the compact locationforecast document.
type Forecast struct {
	Properties struct {
		Meta struct {
			UpdatedAt time.Time `json:"updated_at"`
		} `json:"meta"`
		Timeseries []Timestep `json:"timeseries"`
	} `json:"properties"`
}

type Timestep struct {
	Time time.Time `json:"time"`
	Data struct {
		Instant struct {
			Details InstantDetails `json:"details"`
		} `json:"instant"`
		Next1Hours *NextHours `json:"next_1_hours"`
		Next6Hours *NextHours `json:"next_6_hours"`
	} `json:"data"`
}

// InstantDetails holds the instantaneous readings. The temperature is a
// pointer: the API omits it for some timesteps and a missing reading must
// not render as zero degrees.
type InstantDetails struct {
	AirTemperature        *float64 `json:"air_temperature"`
	RelativeHumidity      float64  `json:"relative_humidity"`
	WindSpeed             float64  `json:"wind_speed"`
	WindFromDirection     float64  `json:"wind_from_direction"`
	AirPressureAtSeaLevel float64  `json:"air_pressure_at_sea_level"`
}

type NextHours struct {
	Summary struct {
		SymbolCode string `json:"symbol_code"`
	} `json:"summary"`
	Details struct {
		PrecipitationAmount float64 `json:"precipitation_amount"`
	} `json:"details"`
}

// Fetch retrieves the compact forecast for the given coordinates.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*Forecast, error) {
	u := fmt.Sprintf("%s%s?lat=%s&lon=%s", c.BaseURL, compactPath,
		strconv.FormatFloat(lat, 'f', 4, 64), strconv.FormatFloat(lon, 'f', 4, 64))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	ua := c.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("met.no returned status code: %d", resp.StatusCode)
	}

	var fc Forecast
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding forecast: %w", err)
	}
	return &fc, nil
}

// Observation is the normalized current-conditions reading shown in the
// tray. It is persisted between runs, hence the JSON tags.
type Observation struct {
	Time              time.Time `json:"time"`
	UpdatedAt         time.Time `json:"updated_at"`
	AirTemperature    *float64  `json:"air_temperature"`
	RelativeHumidity  float64   `json:"relative_humidity"`
	WindSpeed         float64   `json:"wind_speed"`
	WindFromDirection float64   `json:"wind_from_direction"`
	PressureHPa       float64   `json:"pressure_hpa"`
	SymbolCode        string    `json:"symbol_code"`
	Precipitation     float64   `json:"precipitation"`
}

// HourPoint is one entry of the short-term forecast in the details window.
type HourPoint struct {
	Time           time.Time
	AirTemperature *float64
	SymbolCode     string
	Precipitation  float64
}

func symbolCode(ts Timestep) (code string, precip float64) {
	if ts.Data.Next1Hours != nil {
		return ts.Data.Next1Hours.Summary.SymbolCode, ts.Data.Next1Hours.Details.PrecipitationAmount
	}
	if ts.Data.Next6Hours != nil {
		return ts.Data.Next6Hours.Summary.SymbolCode, ts.Data.Next6Hours.Details.PrecipitationAmount
	}
	return "", 0
}

// Current extracts the first timestep as the current conditions.
func (f *Forecast) Current() (Observation, error) {
	if len(f.Properties.Timeseries) == 0 {
		return Observation{}, fmt.Errorf("forecast contains no timeseries")
	}
	ts := f.Properties.Timeseries[0]
	code, precip := symbolCode(ts)
	d := ts.Data.Instant.Details
	return Observation{
		Time:              ts.Time,
		UpdatedAt:         f.Properties.Meta.UpdatedAt,
		AirTemperature:    d.AirTemperature,
		RelativeHumidity:  d.RelativeHumidity,
		WindSpeed:         d.WindSpeed,
		WindFromDirection: d.WindFromDirection,
		PressureHPa:       d.AirPressureAtSeaLevel,
		SymbolCode:        code,
		Precipitation:     precip,
	}, nil
}

// Hourly returns up to n points following the current one.
func (f *Forecast) Hourly(n int) []HourPoint {
	series := f.Properties.Timeseries
	if len(series) <= 1 {
		return nil
	}
	series = series[1:]
	if len(series) > n {
		series = series[:n]
	}
	points := make([]HourPoint, 0, len(series))
	for _, ts := range series {
		code, precip := symbolCode(ts)
		points = append(points, HourPoint{
			Time:           ts.Time,
			AirTemperature: ts.Data.Instant.Details.AirTemperature,
			SymbolCode:     code,
			Precipitation:  precip,
		})
	}
	return points
}

// FormatTemp renders a temperature reading as a short label, or "N/A" when
// the reading is absent.
func FormatTemp(t *float64) string {
	if t == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d°C", int(math.Round(*t)))
}

// TempLabel is the text overlaid on the tray icon.
func (o Observation) TempLabel() string {
	return FormatTemp(o.AirTemperature)
}
