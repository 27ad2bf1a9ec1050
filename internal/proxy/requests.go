// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package proxy

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/circuitweather/internal/config"
	"github.com/tomtom215/circuitweather/internal/validation"
)

// defaultSchedulePath is proxied when no segments are given.
const defaultSchedulePath = "current"

// forecastFields is the fixed field list requested for every point forecast.
var forecastFields = url.Values{
	"current":       {"temperature_2m,relative_humidity_2m,precipitation,weather_code,wind_speed_10m,wind_direction_10m"},
	"hourly":        {"temperature_2m,precipitation_probability,precipitation,weather_code,wind_speed_10m,wind_gusts_10m"},
	"timezone":      {"auto"},
	"forecast_days": {"7"},
}

type scheduleRequest struct {
	Path string `validate:"required,apipath"`
}

type trackRequest struct {
	ID string `validate:"required,trackid"`
}

type forecastRequest struct {
	Lat string `validate:"required,coord"`
	Lon string `validate:"required,coord"`
}

// Targets builds canonical upstream URLs. The URL doubles as the cache key,
// so it depends only on validated client input, never on request headers.
type Targets struct {
	scheduleBase string
	radarURL     string
	trackBase    string
	forecastURL  string
}

// NewTargets derives upstream targets from configuration.
func NewTargets(cfg config.UpstreamConfig) Targets {
	return Targets{
		scheduleBase: withSlash(cfg.ScheduleURL),
		radarURL:     cfg.RadarURL,
		trackBase:    withSlash(cfg.TrackURL),
		forecastURL:  cfg.ForecastURL,
	}
}

// ScheduleURL validates the path segments and returns the upstream URL.
// An empty path selects the current season.
func (t Targets) ScheduleURL(segments string) (string, error) {
	if segments == "" {
		segments = defaultSchedulePath
	}
	if verr := validation.ValidateStruct(&scheduleRequest{Path: segments}); verr != nil {
		return "", &ValidationError{Message: "Invalid API path", Err: ErrInvalidPath}
	}
	return t.scheduleBase + segments, nil
}

// RadarURL returns the fixed manifest URL.
func (t Targets) RadarURL() string {
	return t.radarURL
}

// TrackURL validates the circuit id and returns the GeoJSON URL.
func (t Targets) TrackURL(id string) (string, error) {
	if verr := validation.ValidateStruct(&trackRequest{ID: id}); verr != nil {
		return "", &ValidationError{Message: "Invalid track ID", Err: ErrInvalidTrackID}
	}
	return t.trackBase + id + ".geojson", nil
}

// ForecastURL validates the coordinates and returns the forecast URL.
// Coordinates are canonicalized so "51.50" and "51.5" share one entry.
func (t Targets) ForecastURL(lat, lon string) (string, error) {
	if verr := validation.ValidateStruct(&forecastRequest{Lat: lat, Lon: lon}); verr != nil {
		return "", &ValidationError{Message: "Invalid coordinates", Err: ErrInvalidCoordinates}
	}

	q := url.Values{}
	for k, v := range forecastFields {
		q[k] = v
	}
	q.Set("latitude", canonicalCoord(lat))
	q.Set("longitude", canonicalCoord(lon))

	// Encode sorts by key, which keeps the URL stable.
	return t.forecastURL + "?" + q.Encode(), nil
}

// canonicalCoord normalizes a coordinate that already passed the coord rule.
func canonicalCoord(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func withSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
