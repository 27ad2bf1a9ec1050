// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package config

import (
	"fmt"
	"slices"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validCacheTypes = map[string]bool{
	"memory":   true,
	"badger":   true,
	"disabled": true,
}

// Validate checks that configuration values are present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateUpstream(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	if err := c.validateRadar(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return validateOrigin(c.Server.ProductionOrigin, "PRODUCTION_ORIGIN")
}

func (c *Config) validateUpstream() error {
	urls := []struct {
		value string
		name  string
	}{
		{c.Upstream.ScheduleURL, "UPSTREAM_SCHEDULE_URL"},
		{c.Upstream.RadarURL, "UPSTREAM_RADAR_URL"},
		{c.Upstream.TrackURL, "UPSTREAM_TRACK_URL"},
		{c.Upstream.ForecastURL, "UPSTREAM_FORECAST_URL"},
	}
	for _, u := range urls {
		if err := validateHTTPURL(u.value, u.name); err != nil {
			return err
		}
	}

	if c.Upstream.UserAgent == "" {
		return fmt.Errorf("UPSTREAM_USER_AGENT is required")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Upstream.RequestsPerSecond < 0 {
		return fmt.Errorf("UPSTREAM_REQUESTS_PER_SECOND must not be negative")
	}
	if c.Upstream.RequestsPerSecond > 0 && c.Upstream.Burst < 1 {
		return fmt.Errorf("UPSTREAM_BURST must be at least 1 when pacing is enabled")
	}
	return nil
}

func (c *Config) validateCache() error {
	if !validCacheTypes[c.Cache.Type] {
		return fmt.Errorf("CACHE_TYPE must be one of: memory, badger, disabled")
	}
	switch c.Cache.Type {
	case "memory":
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("CACHE_MAX_ENTRIES must be at least 1")
		}
		if c.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive")
		}
	case "badger":
		if c.Cache.BadgerPath == "" {
			return fmt.Errorf("CACHE_BADGER_PATH is required when CACHE_TYPE=badger")
		}
		if c.Cache.GCInterval <= 0 {
			return fmt.Errorf("CACHE_GC_INTERVAL must be positive")
		}
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateRadar() error {
	r := c.Radar
	if r.PollInterval <= 0 {
		return fmt.Errorf("RADAR_POLL_INTERVAL must be positive")
	}
	if len(r.SpeedPresets) == 0 {
		return fmt.Errorf("RADAR_SPEED_PRESETS must not be empty")
	}
	for _, s := range r.SpeedPresets {
		if s <= 0 {
			return fmt.Errorf("RADAR_SPEED_PRESETS must be positive, got %d", s)
		}
	}
	if !slices.Contains(r.SpeedPresets, r.SpeedMs) {
		return fmt.Errorf("RADAR_SPEED_MS %d is not one of the speed presets %v", r.SpeedMs, r.SpeedPresets)
	}
	if r.Opacity <= 0 || r.Opacity > 1 {
		return fmt.Errorf("RADAR_OPACITY must be in (0, 1], got %g", r.Opacity)
	}
	if r.TileLoadTimeout <= 0 {
		return fmt.Errorf("RADAR_TILE_LOAD_TIMEOUT must be positive")
	}
	if r.TileSize != 256 && r.TileSize != 512 {
		return fmt.Errorf("RADAR_TILE_SIZE must be 256 or 512, got %d", r.TileSize)
	}
	if r.ProxyBaseURL != "" {
		if err := validateOrigin(r.ProxyBaseURL, "RADAR_PROXY_BASE_URL"); err != nil {
			return err
		}
	}
	if r.PrefetchLat < -85.0511 || r.PrefetchLat > 85.0511 {
		return fmt.Errorf("RADAR_PREFETCH_LAT must be within web mercator bounds")
	}
	if r.PrefetchLon < -180 || r.PrefetchLon > 180 {
		return fmt.Errorf("RADAR_PREFETCH_LON must be within [-180, 180]")
	}
	if r.PrefetchZoom < 0 || r.PrefetchZoom > 10 {
		return fmt.Errorf("RADAR_PREFETCH_ZOOM must be within [0, 10]")
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
