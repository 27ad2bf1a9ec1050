// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package config

import (
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Cache    CacheConfig    `koanf:"cache"`
	Security SecurityConfig `koanf:"security"`
	Radar    RadarConfig    `koanf:"radar"`
	Logging  LoggingConfig  `koanf:"logging"`

	// Dev switches client base URLs between the third-party endpoints
	// (true) and the /api/* proxy paths (false). See Endpoints.
	Dev bool `koanf:"dev"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// ProductionOrigin is the only non-loopback origin granted CORS headers.
	ProductionOrigin string `koanf:"production_origin"`

	Environment string `koanf:"environment"` // "development", "staging", "production"
}

// UpstreamConfig holds the third-party API targets proxied under /api/*.
type UpstreamConfig struct {
	ScheduleURL string `koanf:"schedule_url"` // base, segments appended
	RadarURL    string `koanf:"radar_url"`    // full manifest URL, no params
	TrackURL    string `koanf:"track_url"`    // base, "<id>.geojson" appended
	ForecastURL string `koanf:"forecast_url"` // endpoint, query built per request

	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`

	// RequestsPerSecond paces calls per resource family. Zero disables pacing.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// CacheConfig selects and sizes the shared response cache.
type CacheConfig struct {
	// Type is one of: memory, badger, disabled.
	Type            string        `koanf:"type"`
	MaxEntries      int           `koanf:"max_entries"`
	BadgerPath      string        `koanf:"badger_path"`
	GCInterval      time.Duration `koanf:"gc_interval"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// SecurityConfig holds per-IP rate limiting for the /api routes.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// RadarConfig holds the radar frame engine settings shared by the live view
// and the headless radar command.
type RadarConfig struct {
	LiveEnabled  bool          `koanf:"live_enabled"`
	PollInterval time.Duration `koanf:"poll_interval"`

	// SpeedMs is the initial playback speed in milliseconds per frame and
	// must be one of SpeedPresets.
	SpeedMs      int   `koanf:"speed_ms"`
	SpeedPresets []int `koanf:"speed_presets"`

	Opacity         float64       `koanf:"opacity"`
	TileLoadTimeout time.Duration `koanf:"tile_load_timeout"`
	TileSize        int           `koanf:"tile_size"`

	// ProxyBaseURL prefixes /api/radar for server-side manifest reads. When
	// empty, serve's live view uses the local server and the headless radar
	// command reads Upstream.RadarURL directly.
	ProxyBaseURL string `koanf:"proxy_base_url"`

	PrefetchLat  float64 `koanf:"prefetch_lat"`
	PrefetchLon  float64 `koanf:"prefetch_lon"`
	PrefetchZoom int     `koanf:"prefetch_zoom"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load is the preferred entry point. It is an alias for LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ListenAddr returns host:port for the HTTP server.
func (c *Config) ListenAddr() string {
	return joinHostPort(c.Server.Host, c.Server.Port)
}
