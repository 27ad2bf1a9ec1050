// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

/*
Package api wires the HTTP surface of the server using the Chi router.

Routes:

	/api/f1, /api/f1/*     schedule proxy (go-chi/cors origin check, proxy.Handler.Preflight)
	/api/radar             radar manifest proxy
	/api/track/*           circuit outline proxy
	/api/weather           point forecast proxy
	/api/*                 404 {"error":"API endpoint not found"}

	/api/config            client endpoint switch (dev flag)
	/api/v1/radar/state    live radar view snapshot
	/api/v1/radar/control  playback commands (POST)
	/health, /health/live, /health/ready
	/metrics               Prometheus exposition
	/swagger/*             Swagger UI and doc.json
	/ws                    radar stream (see package websocket)

The proxy routes are served by package proxy; this package only mounts them
behind the shared middleware stack: request ids, real IP, panic recovery,
security headers, Prometheus instrumentation, access logging and per-IP rate
limiting through go-chi/httprate.

Service endpoints (config, health, radar) use the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"timestamp": "...", "request_id": "..."}}

The proxy routes do not; they answer with the upstream body or a fixed
{"error": "...", "status": N} object.
*/
package api
