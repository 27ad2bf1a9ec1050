// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8787 {
		t.Errorf("Server.Port = %d, want 8787", cfg.Server.Port)
	}
	if cfg.Dev {
		t.Error("Dev should be false by default")
	}
	if cfg.Upstream.ScheduleURL != "https://api.jolpi.ca/ergast/f1/" {
		t.Errorf("Upstream.ScheduleURL = %q", cfg.Upstream.ScheduleURL)
	}
	if cfg.Upstream.UserAgent != "CircuitWeather/1.0" {
		t.Errorf("Upstream.UserAgent = %q, want CircuitWeather/1.0", cfg.Upstream.UserAgent)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %q, want memory", cfg.Cache.Type)
	}
	if cfg.Radar.SpeedMs != 1000 {
		t.Errorf("Radar.SpeedMs = %d, want 1000", cfg.Radar.SpeedMs)
	}
	if cfg.Radar.Opacity != 0.65 {
		t.Errorf("Radar.Opacity = %v, want 0.65", cfg.Radar.Opacity)
	}
	if cfg.Radar.TileLoadTimeout != 3*time.Second {
		t.Errorf("Radar.TileLoadTimeout = %v, want 3s", cfg.Radar.TileLoadTimeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"PRODUCTION_ORIGIN", "server.production_origin"},
		{"DEV", "dev"},
		{"CIRCUIT_LOCAL", "dev"},
		{"UPSTREAM_RADAR_URL", "upstream.radar_url"},
		{"CACHE_TYPE", "cache.type"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"RADAR_POLL_INTERVAL", "radar.poll_interval"},
		{"RADAR_SPEED_PRESETS", "radar.speed_presets"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DEV", "true")
	t.Setenv("CACHE_TYPE", "disabled")
	t.Setenv("RADAR_POLL_INTERVAL", "90s")
	t.Setenv("RADAR_SPEED_PRESETS", "1500, 750")
	t.Setenv("RADAR_SPEED_MS", "750")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if !cfg.Dev {
		t.Error("Dev should be true")
	}
	if cfg.Cache.Type != "disabled" {
		t.Errorf("Cache.Type = %q, want disabled", cfg.Cache.Type)
	}
	if cfg.Radar.PollInterval != 90*time.Second {
		t.Errorf("Radar.PollInterval = %v, want 90s", cfg.Radar.PollInterval)
	}
	if len(cfg.Radar.SpeedPresets) != 2 || cfg.Radar.SpeedPresets[1] != 750 {
		t.Errorf("Radar.SpeedPresets = %v, want [1500 750]", cfg.Radar.SpeedPresets)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7000
  production_origin: https://weather.example.com
cache:
  type: badger
  badger_path: /tmp/cw-cache
radar:
  opacity: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Server.ProductionOrigin != "https://weather.example.com" {
		t.Errorf("Server.ProductionOrigin = %q", cfg.Server.ProductionOrigin)
	}
	if cfg.Cache.Type != "badger" || cfg.Cache.BadgerPath != "/tmp/cw-cache" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Radar.Opacity != 0.5 {
		t.Errorf("Radar.Opacity = %v, want 0.5", cfg.Radar.Opacity)
	}
	// Untouched values keep their defaults.
	if cfg.Radar.SpeedMs != 1000 {
		t.Errorf("Radar.SpeedMs = %d, want default 1000", cfg.Radar.SpeedMs)
	}
	// Env beats file.
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_InvalidSpeedPreset(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("RADAR_SPEED_PRESETS", "1000,fast")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected error for non-numeric speed preset")
	}
}
