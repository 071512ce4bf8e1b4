package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Las-Vejas/shawty/internal/config"
	"github.com/Las-Vejas/shawty/pkg/logger"
)

// Location holds whatever the geolocation provider knew about an IP. Empty
// fields mean unknown.
type Location struct {
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
}

// geoClient bounds the lookup; it sits on the critical path of every redirect
// and must never hang the visitor.
var geoClient = &http.Client{Timeout: 3 * time.Second}

// LookupLocation asks the configured ipapi-style provider about an IP.
// It is strictly best-effort: transport failures, non-200 statuses, decode
// errors and null fields all degrade to partial or empty data. It never
// returns an error because the redirect pipeline has nothing useful to do
// with one.
func LookupLocation(ctx context.Context, ip string) Location {
	url := fmt.Sprintf("%s/%s/json/", config.AppConfig.GeoIPBaseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}
	}

	resp, err := geoClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Str("ip", ip).Msg("Geolocation lookup failed")
		return Location{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug().Int("status", resp.StatusCode).Str("ip", ip).Msg("Geolocation lookup non-OK")
		return Location{}
	}

	var payload struct {
		CountryName *string `json:"country_name"`
		City        *string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Debug().Err(err).Str("ip", ip).Msg("Geolocation response unparsable")
		return Location{}
	}

	var loc Location
	if payload.CountryName != nil {
		loc.Country = *payload.CountryName
	}
	if payload.City != nil {
		loc.City = *payload.City
	}
	return loc
}
