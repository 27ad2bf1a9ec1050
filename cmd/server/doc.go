// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

/*
Command circuitweather runs the Circuit Weather edge cache proxy and radar
frame engine.

# Commands

	circuitweather serve    # proxy, live radar view, websocket hub
	circuitweather radar    # headless radar view with tile prefetch
	circuitweather version

# Serve

serve wires the components into a Suture v4 tree:

	RootSupervisor ("circuitweather")
	├── DataSupervisor ("data-layer")
	│   └── badger-gc or cache-janitor
	├── MessagingSupervisor ("messaging-layer")
	│   ├── websocket-hub
	│   └── radar-view (radar.live_enabled)
	└── APISupervisor ("api-layer")
	    └── http-server

The listener is bound before the tree starts. The live radar view reads its
manifest through the local /api/radar route (or radar.proxy_base_url), so the
manifest shares the proxy cache with browsers.

The API is described at /swagger/index.html (OpenAPI document at /swagger/doc.json).
Regenerate docs/ with go generate ./cmd/server after changing annotations.

# Radar

radar runs one view whose layers each fetch the tile covering a point. It
reads the manifest through radar.proxy_base_url when set, and straight from
upstream.radar_url otherwise:

	circuitweather radar --lat 45.6156 --lon 9.2811 --zoom 7 \
	    --session 2026-09-06T13:00:00Z --tz Europe/Rome

# Configuration

Configuration is loaded via Koanf v2 (defaults, then config.yaml, then
environment). --config sets CONFIG_PATH. See internal/config.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
server.timeout, pending proxy cache writes finish, and the hub closes every
websocket client.
*/
package main
