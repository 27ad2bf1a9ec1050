// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

// Package proxy implements the edge cache proxy for the four upstream
// resource families: event schedule, radar manifest, track geometry and
// point forecast.
//
// Each request is validated, mapped to a canonical upstream URL that also
// serves as the cache key, served from the shared cache when fresh, and
// otherwise fetched upstream and stored asynchronously:
//
//	GET /api/f1/{segments}     schedule, 3600s
//	GET /api/radar             radar manifest, 60s
//	GET /api/track/{id}        track GeoJSON, 86400s
//	GET /api/weather?lat=&lon= point forecast, 900s
//
// Error Taxonomy:
//   - ValidationError: 400, no upstream call
//   - upstream non-2xx: status forwarded with a generic body; track maps
//     anything but 404 to 502
//   - transport failure or open circuit: 502, detail logged server-side only
//
// CORS headers are decided by the Gatekeeper on every response, including
// cache hits. Stored CORS values are never trusted.
//
// Upstream calls go through one sony/gobreaker circuit breaker and one
// golang.org/x/time/rate token bucket per family.
package proxy
