// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

/*
Package config provides centralized configuration management for Circuit Weather.

Configuration is layered with Koanf v2: struct defaults, then an optional YAML
file, then environment variables.

# Configuration File

The first existing file wins:
  - $CONFIG_PATH
  - config.yaml / config.yml
  - /etc/circuitweather/config.yaml / config.yml

Example:

	server:
	  port: 8787
	  production_origin: https://circuitweather.pages.dev
	cache:
	  type: badger
	  badger_path: /data/cache
	radar:
	  poll_interval: 5m
	  speed_ms: 1000

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
  - PRODUCTION_ORIGIN: origin granted CORS besides localhost
  - ENVIRONMENT: development, staging, production

Dev flag:
  - DEV (or CIRCUIT_LOCAL): browser talks to third-party APIs directly

Upstream:
  - UPSTREAM_SCHEDULE_URL, UPSTREAM_RADAR_URL, UPSTREAM_TRACK_URL, UPSTREAM_FORECAST_URL
  - UPSTREAM_USER_AGENT, UPSTREAM_TIMEOUT
  - UPSTREAM_REQUESTS_PER_SECOND, UPSTREAM_BURST

Cache:
  - CACHE_TYPE: memory, badger, disabled
  - CACHE_MAX_ENTRIES, CACHE_CLEANUP_INTERVAL (memory)
  - CACHE_BADGER_PATH, CACHE_GC_INTERVAL (badger)

Rate limiting:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Radar:
  - RADAR_LIVE_ENABLED, RADAR_POLL_INTERVAL
  - RADAR_SPEED_MS, RADAR_SPEED_PRESETS (comma-separated ms)
  - RADAR_OPACITY, RADAR_TILE_LOAD_TIMEOUT, RADAR_TILE_SIZE
  - RADAR_PROXY_BASE_URL
  - RADAR_PREFETCH_LAT, RADAR_PREFETCH_LON, RADAR_PREFETCH_ZOOM

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
