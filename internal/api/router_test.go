// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	_ "github.com/tomtom215/circuitweather/docs"
	"github.com/tomtom215/circuitweather/internal/cache"
	"github.com/tomtom215/circuitweather/internal/config"
	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/proxy"
	"github.com/tomtom215/circuitweather/internal/radar"
	ws "github.com/tomtom215/circuitweather/internal/websocket"
)

func init() {
	logging.SetLogger(logging.NewTestLogger(io.Discard))
}

type stubFetcher struct {
	mu      sync.Mutex
	targets []string
}

func (f *stubFetcher) Fetch(_ context.Context, _, target string) (*proxy.UpstreamResponse, error) {
	f.mu.Lock()
	f.targets = append(f.targets, target)
	f.mu.Unlock()
	return &proxy.UpstreamResponse{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   []byte(`{"ok":true}`),
	}, nil
}

type stubRadar struct {
	mu      sync.Mutex
	state   radar.AnimationState
	actions []string
}

func (s *stubRadar) Snapshot() ws.SnapshotData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ws.SnapshotData{View: "live", State: s.state, Speeds: []int{2000, 1000, 500}}
}

func (s *stubRadar) Control(c ws.ControlData) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, c.Action)
	switch c.Action {
	case ws.ActionPause:
		s.state.Playing = false
	case ws.ActionPlay:
		s.state.Playing = true
	case ws.ActionSeek:
		s.state.CurrentIndex = c.Index
	case ws.ActionSpeed:
		s.state.SpeedMs = c.SpeedMs
	}
	return true
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8787, ProductionOrigin: "https://circuitweather.pages.dev"},
		Upstream: config.UpstreamConfig{
			ScheduleURL: "https://schedule.example/f1/",
			RadarURL:    "https://radar.example/maps.json",
			TrackURL:    "https://tracks.example/circuits/",
			ForecastURL: "https://forecast.example/v1/forecast",
		},
		Radar: config.RadarConfig{
			LiveEnabled:  true,
			PollInterval: 5 * time.Minute,
			SpeedMs:      1000,
			SpeedPresets: []int{2000, 1000, 500},
			Opacity:      0.65,
			TileSize:     256,
		},
	}
}

type testServer struct {
	handler http.Handler
	fetcher *stubFetcher
	radar   *stubRadar
	proxy   *proxy.Handler
}

func newTestServer(t *testing.T, withRadar bool) *testServer {
	t.Helper()

	cfg := testConfig()
	gk := proxy.NewGatekeeper(cfg.Server.ProductionOrigin)
	store := cache.NewMemoryStore(64)
	fetcher := &stubFetcher{}
	ph := proxy.NewHandler(proxy.NewTargets(cfg.Upstream), store, fetcher, gk)
	t.Cleanup(ph.Wait)

	ts := &testServer{fetcher: fetcher, proxy: ph}
	var rc RadarController
	if withRadar {
		ts.radar = &stubRadar{state: radar.AnimationState{Playing: true, SpeedMs: 1000, FrameCount: 12, CurrentIndex: 11}}
		rc = ts.radar
	}

	h := NewHandler(cfg, gk, store, nil, rc)
	mw := NewChiMiddleware(&ChiMiddlewareConfig{AllowOrigin: gk.AllowOriginFunc, RateLimitDisabled: true})
	ts.handler = NewRouter(h, ph, mw).SetupChi()
	return ts
}

func (ts *testServer) do(method, target, origin, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) APIResponse {
	t.Helper()
	var env struct {
		APIResponse
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env.APIResponse
}

// =====================================================
// Proxy Route Tests
// =====================================================

func TestRouter_ProxyRoutes(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantTarget string
	}{
		{"schedule root", "/api/f1", http.StatusOK, "https://schedule.example/f1/current"},
		{"schedule path", "/api/f1/2024/5/results", http.StatusOK, "https://schedule.example/f1/2024/5/results"},
		{"radar", "/api/radar", http.StatusOK, "https://radar.example/maps.json"},
		{"track", "/api/track/monza", http.StatusOK, "https://tracks.example/circuits/monza.geojson"},
		{"forecast", "/api/weather?lat=45.6&lon=9.28", http.StatusOK, ""},
		{"bad track", "/api/track/Monza!", http.StatusBadRequest, ""},
		{"bad schedule", "/api/f1/../etc", http.StatusBadRequest, ""},
		{"unknown", "/api/nope", http.StatusNotFound, ""},
		{"bare api", "/api", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodGet, tt.path, "", "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantTarget == "" {
				return
			}
			ts.fetcher.mu.Lock()
			found := false
			for _, target := range ts.fetcher.targets {
				found = found || target == tt.wantTarget
			}
			ts.fetcher.mu.Unlock()
			if !found {
				t.Errorf("upstream target %q not requested; got %v", tt.wantTarget, ts.fetcher.targets)
			}
		})
	}
}

func TestRouter_NotFoundBody(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec := ts.do(http.MethodGet, "/api/unknown/route", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "API endpoint not found" {
		t.Errorf("body = %v", body)
	}
}

func TestRouter_SchedulePreflight(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	tests := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{"production", "https://circuitweather.pages.dev", "https://circuitweather.pages.dev"},
		{"localhost", "http://localhost:5173", "http://localhost:5173"},
		{"foreign", "https://evil.example", ""},
		{"lookalike", "https://circuitweather.pages.dev.evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/f1/current", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			ts.handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
			if rec.Code != http.StatusNoContent {
				t.Errorf("status = %d, want 204", rec.Code)
			}
			if got := rec.Header().Get("Content-Security-Policy"); got != "default-src 'none'; frame-ancestors 'none'" {
				t.Errorf("Content-Security-Policy = %q", got)
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("missing nosniff on preflight")
			}

			wantMethods, wantHeaders, wantMaxAge := "GET, OPTIONS", "Content-Type", "86400"
			if tt.wantAllow == "" {
				wantMethods, wantHeaders, wantMaxAge = "", "", ""
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods"); got != wantMethods {
				t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, wantMethods)
			}
			if got := rec.Header().Get("Access-Control-Allow-Headers"); got != wantHeaders {
				t.Errorf("Access-Control-Allow-Headers = %q, want %q", got, wantHeaders)
			}
			if got := rec.Header().Get("Access-Control-Max-Age"); got != wantMaxAge {
				t.Errorf("Access-Control-Max-Age = %q, want %q", got, wantMaxAge)
			}
		})
	}
	if len(ts.fetcher.targets) != 0 {
		t.Errorf("preflight reached upstream: %v", ts.fetcher.targets)
	}
}

func TestRouter_ProxyCORSOnGet(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec := ts.do(http.MethodGet, "/api/radar", "http://127.0.0.1:8080", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://127.0.0.1:8080" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id")
	}
}

// =====================================================
// Service Endpoint Tests
// =====================================================

func TestRouter_Config(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec := ts.do(http.MethodGet, "/api/config", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cc ClientConfig
	env := decodeEnvelope(t, rec, &cc)
	if !env.Success {
		t.Error("success = false")
	}
	want := config.Endpoints{Schedule: config.SchedulePath, Radar: config.RadarPath, Track: config.TrackPath, Forecast: config.ForecastPath}
	if cc.Endpoints != want {
		t.Errorf("endpoints = %+v, want %+v", cc.Endpoints, want)
	}
	if cc.RadarSpeedMs != 1000 || len(cc.RadarSpeeds) != 3 || cc.PollIntervalSec != 300 {
		t.Errorf("radar config = %+v", cc)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers missing")
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, true)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		rec := ts.do(http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}

	var hs HealthStatus
	decodeEnvelope(t, ts.do(http.MethodGet, "/health", "", ""), &hs)
	if hs.Status != "healthy" || hs.CacheBackend != "memory" || !hs.RadarEnabled || hs.RadarFrames != 12 || !hs.RadarPlaying {
		t.Errorf("health = %+v", hs)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	ts.do(http.MethodGet, "/api/radar", "", "")
	rec := ts.do(http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

func TestRouter_Swagger(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec := ts.do(http.MethodGet, "/swagger/doc.json", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status = %d", rec.Code)
	}
	var doc struct {
		Swagger string                     `json:"swagger"`
		Info    struct{ Title string }     `json:"info"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc.json: %v", err)
	}
	if doc.Swagger != "2.0" || doc.Info.Title != "Circuit Weather API" {
		t.Errorf("swagger = %q, title = %q", doc.Swagger, doc.Info.Title)
	}
	for _, path := range []string{"/api/f1/{segments}", "/api/radar", "/api/track/{id}", "/api/weather", "/api/config", "/health", "/ws"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("doc.json missing path %s", path)
		}
	}

	rec = ts.do(http.MethodGet, "/swagger/index.html", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Errorf("index.html status = %d", rec.Code)
	}
}

func TestRouter_RadarDisabled(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/radar/state", ""},
		{http.MethodPost, "/api/v1/radar/control", `{"action":"play"}`},
	} {
		rec := ts.do(tc.method, tc.path, "", tc.body)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s %s status = %d, want 503", tc.method, tc.path, rec.Code)
		}
	}

	if rec := ts.do(http.MethodGet, "/ws", "http://localhost:3000", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/ws without hub status = %d, want 503", rec.Code)
	}
}

func TestRouter_RadarControl(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"pause", http.MethodPost, `{"action":"pause"}`, http.StatusOK, ""},
		{"seek", http.MethodPost, `{"action":"seek","index":3}`, http.StatusOK, ""},
		{"speed", http.MethodPost, `{"action":"speed","speed_ms":500}`, http.StatusOK, ""},
		{"speed missing value", http.MethodPost, `{"action":"speed"}`, http.StatusBadRequest, ErrCodeValidationFailed},
		{"unknown action", http.MethodPost, `{"action":"rewind"}`, http.StatusBadRequest, ErrCodeValidationFailed},
		{"negative seek", http.MethodPost, `{"action":"seek","index":-1}`, http.StatusBadRequest, ErrCodeValidationFailed},
		{"malformed", http.MethodPost, `{"action":`, http.StatusBadRequest, ErrCodeBadRequest},
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, true)

			rec := ts.do(tt.method, "/api/v1/radar/control", "", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec, nil)
			if tt.wantCode == "" {
				if !env.Success {
					t.Errorf("success = false: %+v", env.Error)
				}
				return
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestRouter_RadarStateReflectsControl(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, true)

	ts.do(http.MethodPost, "/api/v1/radar/control", "", `{"action":"seek","index":4}`)

	var snap ws.SnapshotData
	decodeEnvelope(t, ts.do(http.MethodGet, "/api/v1/radar/state", "", ""), &snap)
	if snap.View != "live" || snap.State.CurrentIndex != 4 {
		t.Errorf("snapshot = %+v", snap)
	}
}

// =====================================================
// WebSocket Origin Tests
// =====================================================

func TestCheckWebSocketOrigin(t *testing.T) {
	t.Parallel()

	h := NewHandler(testConfig(), proxy.NewGatekeeper("https://circuitweather.pages.dev"), nil, nil, nil)

	tests := []struct {
		origin string
		want   bool
	}{
		{"", false},
		{"https://circuitweather.pages.dev", true},
		{"http://localhost:5173", true},
		{"https://evil.example", false},
		{"null", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := h.checkWebSocketOrigin(req); got != tt.want {
			t.Errorf("checkWebSocketOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}
