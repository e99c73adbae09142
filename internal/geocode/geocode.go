// Package geocode resolves a city name to coordinates via Nominatim and
// autodetects the city from the machine's public IP via ipinfo.io.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/weathercheck/weathertray/internal/envconfig"
)

// Nominatim's usage policy requires an identifying User-Agent.
const defaultUserAgent = "weathertray (github.com/weathercheck/weathertray)"

// DefaultCity is used when autodetection fails.
const DefaultCity = "Sofia"

// Coords is a WGS84 coordinate pair.
type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Fallback is used when geocoding fails, so the widget still shows
// something sensible.
var Fallback = Coords{Lat: 42.6977, Lon: 23.3219} // Sofia

// Client talks to the geocoding services. The zero value is not usable;
// construct it with NewClient or fill in the URLs explicitly in tests.
type Client struct {
	NominatimURL string
	IPInfoURL    string
	UserAgent    string
	HTTPClient   *http.Client
}

func NewClient() *Client {
	return &Client{
		NominatimURL: envconfig.GeocodeURL(),
		IPInfoURL:    envconfig.IPInfoURL(),
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return defaultUserAgent
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// DetectCity guesses the city from the machine's public IP. It never fails:
// any error falls back to DefaultCity.
func (c *Client) DetectCity(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.IPInfoURL+"/city", nil)
	if err != nil {
		return DefaultCity
	}
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		slog.Debug("city autodetection failed", "error", err)
		return DefaultCity
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("city autodetection failed", "status", resp.StatusCode)
		return DefaultCity
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return DefaultCity
	}
	city := strings.TrimSpace(string(body))
	if city == "" {
		return DefaultCity
	}
	return city
}

// Nominatim returns lat/lon as JSON strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup resolves a city name to coordinates. On any failure it returns
// Fallback alongside the error; callers may keep the fallback coordinates.
func (c *Client) Lookup(ctx context.Context, city string) (Coords, error) {
	u := fmt.Sprintf("%s/search?city=%s&format=json&limit=1", c.NominatimURL, url.QueryEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Fallback, err
	}
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Fallback, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Fallback, fmt.Errorf("nominatim returned status code: %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Fallback, fmt.Errorf("decoding nominatim response: %w", err)
	}
	if len(results) == 0 {
		return Fallback, fmt.Errorf("no geocoding match for %q", city)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Fallback, fmt.Errorf("parsing latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Fallback, fmt.Errorf("parsing longitude %q: %w", results[0].Lon, err)
	}
	return Coords{Lat: lat, Lon: lon}, nil
}
