package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
)

// Coordinates is one geocoding result for a city name.
type Coordinates struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Reading is one current-weather observation. Fallback marks the synthetic
// value substituted when the upstream request failed.
type Reading struct {
	TemperatureC float64
	WindSpeedKmh float64
	IsDay        bool
	Fallback     bool
}

// Client fetches city coordinates and current weather. Single-shot requests,
// no retries; failures are the caller's to surface.
type Client struct {
	httpClient  *http.Client
	geocodeURL  string
	forecastURL string
}

func NewClient() *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		geocodeURL:  defaultGeocodeURL,
		forecastURL: defaultForecastURL,
	}
}

// Geocode resolves a city name to coordinates. An unknown city is reported
// through the ok flag, not an error.
func (c *Client) Geocode(ctx context.Context, city string) (Coordinates, bool, error) {
	q := url.Values{}
	q.Set("name", city)
	q.Set("count", "1")

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, c.geocodeURL+"?"+q.Encode(), &payload); err != nil {
		return Coordinates{}, false, fmt.Errorf("geocode %q: %w", city, err)
	}
	if len(payload.Results) == 0 {
		return Coordinates{}, false, nil
	}
	first := payload.Results[0]
	return Coordinates{Name: first.Name, Latitude: first.Latitude, Longitude: first.Longitude}, true, nil
}

// Current fetches the current weather at a coordinate.
func (c *Client) Current(ctx context.Context, lat, lon float64) (Reading, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("current_weather", "true")

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			IsDay       int     `json:"is_day"`
		} `json:"current_weather"`
	}
	if err := c.getJSON(ctx, c.forecastURL+"?"+q.Encode(), &payload); err != nil {
		return Reading{}, fmt.Errorf("current weather: %w", err)
	}
	return Reading{
		TemperatureC: payload.CurrentWeather.Temperature,
		WindSpeedKmh: payload.CurrentWeather.WindSpeed,
		IsDay:        payload.CurrentWeather.IsDay == 1,
	}, nil
}

// CurrentForCity chains geocoding and the weather fetch. On any failure it
// returns the synthetic fallback reading alongside the error so the caller
// always has something to display.
func (c *Client) CurrentForCity(ctx context.Context, city string) (Reading, error) {
	coords, ok, err := c.Geocode(ctx, city)
	if err != nil {
		return FallbackReading(), err
	}
	if !ok {
		return FallbackReading(), fmt.Errorf("weather: no match for city %q", city)
	}
	reading, err := c.Current(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return FallbackReading(), err
	}
	return reading, nil
}

// FallbackReading is the synthetic value shown when the weather service is
// unreachable, so the display never goes empty.
func FallbackReading() Reading {
	return Reading{TemperatureC: 20, WindSpeedKmh: 5, IsDay: true, Fallback: true}
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
