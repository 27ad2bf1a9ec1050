// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package proxy

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/tomtom215/circuitweather/internal/config"
)

func testTargets() Targets {
	return NewTargets(config.UpstreamConfig{
		ScheduleURL: "https://api.jolpi.ca/ergast/f1",
		RadarURL:    "https://api.rainviewer.com/public/weather-maps.json",
		TrackURL:    "https://raw.githubusercontent.com/bacinger/f1-circuits/master/circuits/",
		ForecastURL: "https://api.open-meteo.com/v1/forecast",
	})
}

func TestTargets_ScheduleURL(t *testing.T) {
	t.Parallel()

	targets := testTargets()

	tests := []struct {
		segments string
		want     string
		wantErr  bool
	}{
		{"current.json", "https://api.jolpi.ca/ergast/f1/current.json", false},
		{"2024/1/results.json", "https://api.jolpi.ca/ergast/f1/2024/1/results.json", false},
		{"", "https://api.jolpi.ca/ergast/f1/current", false},
		{"../etc/passwd", "", true},
		{"a//b", "", true},
		{"/abs", "", true},
		{"current.json?x=1", "", true},
		{"a%2e%2e", "", true},
		{"a b", "", true},
		{strings.Repeat("a", 256), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.segments, func(t *testing.T) {
			t.Parallel()
			got, err := targets.ScheduleURL(tt.segments)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if verr.Message != "Invalid API path" || !errors.Is(err, ErrInvalidPath) {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ScheduleURL(%q) = %q, want %q", tt.segments, got, tt.want)
			}
		})
	}
}

func TestTargets_TrackURL(t *testing.T) {
	t.Parallel()

	targets := testTargets()

	got, err := targets.TrackURL("gb-1948")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://raw.githubusercontent.com/bacinger/f1-circuits/master/circuits/gb-1948.geojson"; got != want {
		t.Errorf("TrackURL = %q, want %q", got, want)
	}

	for _, id := range []string{"", "GB-1948", "a/b", "../x", "a_b", strings.Repeat("a", 51)} {
		if _, err := targets.TrackURL(id); !errors.Is(err, ErrInvalidTrackID) {
			t.Errorf("TrackURL(%q) err = %v, want ErrInvalidTrackID", id, err)
		}
	}
}

func TestTargets_ForecastURL(t *testing.T) {
	t.Parallel()

	targets := testTargets()

	a, err := targets.ForecastURL("51.50", "-0.120")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := targets.ForecastURL("51.5", "-0.12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("equivalent coordinates produced different keys:\n%s\n%s", a, b)
	}

	u, err := url.Parse(a)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("latitude") != "51.5" || q.Get("longitude") != "-0.12" {
		t.Errorf("coordinates = %s,%s", q.Get("latitude"), q.Get("longitude"))
	}
	if q.Get("hourly") == "" || q.Get("current") == "" {
		t.Error("fixed field list missing")
	}

	for _, c := range [][2]string{{"51,5", "0"}, {"abc", "0"}, {"", "0"}, {"0", ""}, {"1e5", "0"}} {
		if _, err := targets.ForecastURL(c[0], c[1]); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("ForecastURL(%q,%q) err = %v, want ErrInvalidCoordinates", c[0], c[1], err)
		}
	}
}

func TestTargets_RadarURLFixed(t *testing.T) {
	t.Parallel()

	if got := testTargets().RadarURL(); got != "https://api.rainviewer.com/public/weather-maps.json" {
		t.Errorf("RadarURL = %q", got)
	}
}

func TestResource_ClientStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		res      Resource
		upstream int
		want     int
	}{
		{Schedule, 404, 404},
		{Schedule, 503, 503},
		{Forecast, 400, 400},
		{Track, 404, 404},
		{Track, 500, 502},
		{Track, 403, 502},
	}
	for _, tt := range tests {
		got, msg := tt.res.clientStatus(tt.upstream)
		if got != tt.want {
			t.Errorf("%s clientStatus(%d) = %d, want %d", tt.res.Name, tt.upstream, got, tt.want)
		}
		if msg == "" {
			t.Errorf("%s clientStatus(%d) returned empty message", tt.res.Name, tt.upstream)
		}
	}
}
