package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(geocode, forecast http.HandlerFunc) (*Client, func()) {
	geoServer := httptest.NewServer(geocode)
	wxServer := httptest.NewServer(forecast)
	client := NewClient()
	client.geocodeURL = geoServer.URL
	client.forecastURL = wxServer.URL
	return client, func() {
		geoServer.Close()
		wxServer.Close()
	}
}

func TestGeocodeReturnsFirstResult(t *testing.T) {
	client, cleanup := testClient(
		func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("name"); got != "Berlin" {
				t.Errorf("expected name=Berlin, got %q", got)
			}
			w.Write([]byte(`{"results":[{"name":"Berlin","latitude":52.52,"longitude":13.41}]}`))
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)
	defer cleanup()

	coords, ok, err := client.Geocode(context.Background(), "Berlin")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if !ok || coords.Name != "Berlin" || coords.Latitude != 52.52 {
		t.Fatalf("unexpected coordinates: %#v", coords)
	}
}

func TestGeocodeUnknownCityIsNotAnError(t *testing.T) {
	client, cleanup := testClient(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)
	defer cleanup()

	_, ok, err := client.Geocode(context.Background(), "Nowhereville")
	if err != nil {
		t.Fatalf("expected no error for empty result set, got %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for unknown city")
	}
}

func TestCurrentParsesReading(t *testing.T) {
	client, cleanup := testClient(
		func(w http.ResponseWriter, r *http.Request) {},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"current_weather":{"temperature":-3.5,"windspeed":14.2,"is_day":0}}`))
		},
	)
	defer cleanup()

	reading, err := client.Current(context.Background(), 52.52, 13.41)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if reading.TemperatureC != -3.5 || reading.WindSpeedKmh != 14.2 || reading.IsDay {
		t.Fatalf("unexpected reading: %#v", reading)
	}
	if reading.Fallback {
		t.Fatalf("real reading must not be marked fallback")
	}
}

func TestCurrentForCityFallsBackOnServerError(t *testing.T) {
	client, cleanup := testClient(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)
	defer cleanup()

	reading, err := client.CurrentForCity(context.Background(), "Berlin")
	if err == nil {
		t.Fatalf("expected an error to surface")
	}
	if !reading.Fallback {
		t.Fatalf("expected the synthetic fallback reading, got %#v", reading)
	}
}

func TestCurrentForCityFallsBackOnUnknownCity(t *testing.T) {
	client, cleanup := testClient(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[]}`))
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)
	defer cleanup()

	reading, err := client.CurrentForCity(context.Background(), "Atlantis")
	if err == nil {
		t.Fatalf("expected an error for unknown city")
	}
	if !reading.Fallback {
		t.Fatalf("expected fallback reading, got %#v", reading)
	}
}
