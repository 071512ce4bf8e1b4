package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Las-Vejas/shawty/internal/config"
	"github.com/stretchr/testify/assert"
)

func withGeoServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	config.AppConfig = &config.Config{GeoIPBaseURL: srv.URL}
}

func TestLookupLocation_FullResponse(t *testing.T) {
	withGeoServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/8.8.8.8/json/", r.URL.Path)
		w.Write([]byte(`{"country_name": "United States", "city": "New York"}`))
	})

	loc := LookupLocation(context.Background(), "8.8.8.8")

	assert.Equal(t, Location{Country: "United States", City: "New York"}, loc)
}

func TestLookupLocation_PartialResponse(t *testing.T) {
	withGeoServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"country_name": "Canada"}`))
	})

	loc := LookupLocation(context.Background(), "8.8.8.8")

	assert.Equal(t, Location{Country: "Canada"}, loc)
}

func TestLookupLocation_NullFields(t *testing.T) {
	withGeoServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"country_name": null, "city": null}`))
	})

	loc := LookupLocation(context.Background(), "8.8.8.8")

	assert.Equal(t, Location{}, loc)
}

func TestLookupLocation_NonOKStatus(t *testing.T) {
	withGeoServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	loc := LookupLocation(context.Background(), "8.8.8.8")

	assert.Equal(t, Location{}, loc)
}

func TestLookupLocation_TransportFailure(t *testing.T) {
	config.AppConfig = &config.Config{GeoIPBaseURL: "http://127.0.0.1:1"}

	loc := LookupLocation(context.Background(), "8.8.8.8")

	assert.Equal(t, Location{}, loc)
}

func TestLookupLocation_GarbageBody(t *testing.T) {
	withGeoServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>rate limited</html>`))
	})

	loc := LookupLocation(context.Background(), "8.8.8.8")

	assert.Equal(t, Location{}, loc)
}
