// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

/*
Package middleware provides HTTP instrumentation middleware.

  - PrometheusMetrics: request count, latency and in-flight gauge labelled by
    chi route pattern
  - AccessLog: structured zerolog access line per request

Both are standard func(http.Handler) http.Handler and are mounted on the chi
router in internal/api after the request-id middleware.
*/
package middleware
