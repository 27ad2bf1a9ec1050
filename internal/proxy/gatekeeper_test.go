// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package proxy

import (
	"net/http"
	"testing"
)

func TestGatekeeper_Allow(t *testing.T) {
	t.Parallel()

	g := NewGatekeeper("https://circuitweather.pages.dev")

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"production", "https://circuitweather.pages.dev", true},
		{"localhost with port", "http://localhost:3000", true},
		{"localhost bare", "http://localhost", true},
		{"loopback with port", "http://127.0.0.1:8787", true},
		{"empty", "", false},
		{"foreign", "http://evil.example", false},
		{"production subdomain", "https://evil.circuitweather.pages.dev", false},
		{"production suffix", "https://circuitweather.pages.dev.evil.example", false},
		{"https localhost", "https://localhost:3000", false},
		{"localhost prefix", "http://localhost.evil.example", false},
		{"port too long", "http://localhost:123456", false},
		{"trailing path", "http://localhost:3000/x", false},
		{"loopback dot wildcard", "http://127a0a0a1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := g.Allow(tt.origin)
			if ok != tt.want {
				t.Fatalf("Allow(%q) ok = %v, want %v", tt.origin, ok, tt.want)
			}
			if ok && got != tt.origin {
				t.Errorf("Allow(%q) = %q, want origin echoed unchanged", tt.origin, got)
			}
			if !ok && got != "" {
				t.Errorf("Allow(%q) = %q, want empty", tt.origin, got)
			}
		})
	}
}

func TestGatekeeper_Apply(t *testing.T) {
	t.Parallel()

	g := NewGatekeeper("https://circuitweather.pages.dev/")

	t.Run("allowed origin replaces placeholder", func(t *testing.T) {
		h := http.Header{}
		h.Set("Access-Control-Allow-Origin", "*")
		g.Apply(h, "http://localhost:3000")

		if got := h.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("ACAO = %q", got)
		}
		if got := h.Get("Vary"); got != "Origin" {
			t.Errorf("Vary = %q, want Origin", got)
		}
	})

	t.Run("disallowed origin strips header", func(t *testing.T) {
		h := http.Header{}
		h.Set("Access-Control-Allow-Origin", "*")
		g.Apply(h, "http://evil.example")

		if _, ok := h["Access-Control-Allow-Origin"]; ok {
			t.Error("ACAO should be removed for a foreign origin")
		}
		if h.Get("Vary") != "" {
			t.Error("Vary should not be set for a foreign origin")
		}
	})

	t.Run("no origin emits nothing", func(t *testing.T) {
		h := http.Header{}
		g.Apply(h, "")
		if len(h) != 0 {
			t.Errorf("expected no headers, got %v", h)
		}
	})

	t.Run("vary not duplicated", func(t *testing.T) {
		h := http.Header{}
		h.Add("Vary", "Accept-Encoding, origin")
		g.Apply(h, "https://circuitweather.pages.dev")
		if got := len(h.Values("Vary")); got != 1 {
			t.Errorf("Vary values = %d, want 1", got)
		}
	})
}
