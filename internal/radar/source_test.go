// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSource_FetchManifest(t *testing.T) {
	t.Parallel()

	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleManifest))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/api/radar", nil, "CircuitWeather/1.0", 512)
	m, err := src.FetchManifest(context.Background())
	if err != nil {
		t.Fatalf("FetchManifest: %v", err)
	}
	if len(m.Frames) != 5 || m.ForecastBoundary != 3 {
		t.Errorf("frames = %d boundary = %d", len(m.Frames), m.ForecastBoundary)
	}
	if want := "https://tilecache.rainviewer.com/v2/radar/1700000000/512/{z}/{x}/{y}/2/1_1.png"; m.Frames[0].TileURLTemplate != want {
		t.Errorf("template = %q", m.Frames[0].TileURLTemplate)
	}
	if gotUA != "CircuitWeather/1.0" || gotAccept != "application/json" {
		t.Errorf("headers UA=%q Accept=%q", gotUA, gotAccept)
	}
}

func TestHTTPSource_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad gateway", http.StatusBadGateway, `{"error":"Radar upstream error","status":500}`},
		{"malformed", http.StatusOK, `{"host":`},
		{"empty", http.StatusOK, `{"host":"h","radar":{"past":[]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			if _, err := NewHTTPSource(srv.URL, srv.Client(), "", 0).FetchManifest(context.Background()); err == nil {
				t.Error("expected error")
			}
		})
	}
}
