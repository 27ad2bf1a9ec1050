// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

/*
Package supervisor runs the server's long-lived components under a
thejerf/suture v4 supervision tree.

	circuitweather
	├── data-layer       badger GC, memory cache janitor
	├── messaging-layer  websocket hub, live radar view
	└── api-layer        HTTP server

Supervisor events are logged through sutureslog into the zerolog-backed
slog handler from package logging. Service wrappers live in
supervisor/services.
*/
package supervisor
