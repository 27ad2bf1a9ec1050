// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/circuitweather/config.yaml",
	"/etc/circuitweather/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:             8787,
			Host:             "0.0.0.0",
			Timeout:          30 * time.Second,
			ProductionOrigin: "https://circuitweather.pages.dev",
			Environment:      "development",
		},
		Upstream: UpstreamConfig{
			ScheduleURL:       "https://api.jolpi.ca/ergast/f1/",
			RadarURL:          "https://api.rainviewer.com/public/weather-maps.json",
			TrackURL:          "https://raw.githubusercontent.com/bacinger/f1-circuits/master/circuits/",
			ForecastURL:       "https://api.open-meteo.com/v1/forecast",
			UserAgent:         "CircuitWeather/1.0",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 4,
			Burst:             8,
		},
		Cache: CacheConfig{
			Type:            "memory",
			MaxEntries:      2048,
			BadgerPath:      "/data/cache",
			GCInterval:      10 * time.Minute,
			CleanupInterval: time.Minute,
		},
		Security: SecurityConfig{
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Radar: RadarConfig{
			LiveEnabled:     true,
			PollInterval:    5 * time.Minute,
			SpeedMs:         1000,
			SpeedPresets:    []int{2000, 1000, 500},
			Opacity:         0.65,
			TileLoadTimeout: 3 * time.Second,
			TileSize:        256,
			ProxyBaseURL:    "",
			PrefetchLat:     52.0786, // Silverstone
			PrefetchLon:     -1.0169,
			PrefetchZoom:    6,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Dev: false,
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Environment variables (highest priority)
	// HTTP_PORT -> server.port, RADAR_POLL_INTERVAL -> radar.poll_interval
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// intSliceConfigPaths are parsed from comma-separated env values into []int.
var intSliceConfigPaths = []string{
	"radar.speed_presets",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range intSliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		values := make([]int, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			n, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("%s: invalid integer %q: %w", path, p, err)
			}
			values = append(values, n)
		}
		if len(values) > 0 {
			if err := k.Set(path, values); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so unrelated environment does not leak
// into the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server
		"http_port":         "server.port",
		"http_host":         "server.host",
		"http_timeout":      "server.timeout",
		"production_origin": "server.production_origin",
		"environment":       "server.environment",

		// Dev flag
		"dev":           "dev",
		"circuit_local": "dev",

		// Upstream
		"upstream_schedule_url":        "upstream.schedule_url",
		"upstream_radar_url":           "upstream.radar_url",
		"upstream_track_url":           "upstream.track_url",
		"upstream_forecast_url":        "upstream.forecast_url",
		"upstream_user_agent":          "upstream.user_agent",
		"upstream_timeout":             "upstream.timeout",
		"upstream_requests_per_second": "upstream.requests_per_second",
		"upstream_burst":               "upstream.burst",

		// Cache
		"cache_type":             "cache.type",
		"cache_max_entries":      "cache.max_entries",
		"cache_badger_path":      "cache.badger_path",
		"cache_gc_interval":      "cache.gc_interval",
		"cache_cleanup_interval": "cache.cleanup_interval",

		// Security
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",

		// Radar
		"radar_live_enabled":      "radar.live_enabled",
		"radar_poll_interval":     "radar.poll_interval",
		"radar_speed_ms":          "radar.speed_ms",
		"radar_speed_presets":     "radar.speed_presets",
		"radar_opacity":           "radar.opacity",
		"radar_tile_load_timeout": "radar.tile_load_timeout",
		"radar_tile_size":         "radar.tile_size",
		"radar_proxy_base_url":    "radar.proxy_base_url",
		"radar_prefetch_lat":      "radar.prefetch_lat",
		"radar_prefetch_lon":      "radar.prefetch_lon",
		"radar_prefetch_zoom":     "radar.prefetch_zoom",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
