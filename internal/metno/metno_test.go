package metno

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleCompact = `{
  "properties": {
    "meta": {"updated_at": "2024-03-01T11:40:00Z"},
    "timeseries": [
      {
        "time": "2024-03-01T12:00:00Z",
        "data": {
          "instant": {"details": {
            "air_temperature": 11.6,
            "relative_humidity": 58.3,
            "wind_speed": 3.4,
            "wind_from_direction": 210.0,
            "air_pressure_at_sea_level": 1012.5
          }},
          "next_1_hours": {
            "summary": {"symbol_code": "partlycloudy_day"},
            "details": {"precipitation_amount": 0.0}
          }
        }
      },
      {
        "time": "2024-03-01T13:00:00Z",
        "data": {
          "instant": {"details": {
            "air_temperature": 10.2,
            "relative_humidity": 65.0,
            "wind_speed": 4.1,
            "wind_from_direction": 220.0,
            "air_pressure_at_sea_level": 1012.1
          }},
          "next_1_hours": {
            "summary": {"symbol_code": "lightrain"},
            "details": {"precipitation_amount": 0.3}
          }
        }
      },
      {
        "time": "2024-03-01T14:00:00Z",
        "data": {
          "instant": {"details": {
            "relative_humidity": 70.0,
            "wind_speed": 4.0,
            "wind_from_direction": 225.0,
            "air_pressure_at_sea_level": 1011.8
          }},
          "next_6_hours": {
            "summary": {"symbol_code": "rain"},
            "details": {"precipitation_amount": 1.2}
          }
        }
      }
    ]
  }
}`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/weatherapi/locationforecast/2.0/compact", r.URL.Path)
		require.Equal(t, "42.6977", r.URL.Query().Get("lat"))
		require.Equal(t, "23.3219", r.URL.Query().Get("lon"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, sampleCompact)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTPClient: srv.Client()}
	fc, err := c.Fetch(context.Background(), 42.6977, 23.3219)
	require.NoError(t, err)
	require.Len(t, fc.Properties.Timeseries, 3)
	require.Equal(t, time.Date(2024, 3, 1, 11, 40, 0, 0, time.UTC), fc.Properties.Meta.UpdatedAt)
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTPClient: srv.Client()}
	_, err := c.Fetch(context.Background(), 1, 2)
	require.ErrorContains(t, err, "403")
}

func fetchSample(t *testing.T) *Forecast {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleCompact)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTPClient: srv.Client()}
	fc, err := c.Fetch(context.Background(), 0, 0)
	require.NoError(t, err)
	return fc
}

func TestCurrent(t *testing.T) {
	fc := fetchSample(t)

	obs, err := fc.Current()
	require.NoError(t, err)
	require.NotNil(t, obs.AirTemperature)
	require.InDelta(t, 11.6, *obs.AirTemperature, 1e-9)
	require.InDelta(t, 58.3, obs.RelativeHumidity, 1e-9)
	require.InDelta(t, 3.4, obs.WindSpeed, 1e-9)
	require.InDelta(t, 210.0, obs.WindFromDirection, 1e-9)
	require.InDelta(t, 1012.5, obs.PressureHPa, 1e-9)
	require.Equal(t, "partlycloudy_day", obs.SymbolCode)
	require.Equal(t, "12°C", obs.TempLabel())
}

func TestCurrentEmptyTimeseries(t *testing.T) {
	var fc Forecast
	_, err := fc.Current()
	require.Error(t, err)
}

func TestHourly(t *testing.T) {
	fc := fetchSample(t)

	points := fc.Hourly(6)
	require.Len(t, points, 2)
	require.Equal(t, "lightrain", points[0].SymbolCode)
	require.InDelta(t, 0.3, points[0].Precipitation, 1e-9)

	// Third timestep has no next_1_hours; symbol falls back to next_6_hours
	// and its temperature is absent.
	require.Equal(t, "rain", points[1].SymbolCode)
	require.Nil(t, points[1].AirTemperature)
	require.InDelta(t, 1.2, points[1].Precipitation, 1e-9)

	require.Len(t, fc.Hourly(1), 1)
}

func TestFormatTemp(t *testing.T) {
	cases := []struct {
		temp *float64
		want string
	}{
		{nil, "N/A"},
		{ptr(11.6), "12°C"},
		{ptr(11.4), "11°C"},
		{ptr(-0.4), "0°C"},
		{ptr(-3.6), "-4°C"},
		{ptr(0.0), "0°C"},
	}
	for _, tt := range cases {
		require.Equal(t, tt.want, FormatTemp(tt.temp))
	}
}

func ptr(f float64) *float64 { return &f }
