// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

// Package tiles provides slippy-map tile math and a headless radar layer
// implementation that prefetches one tile per frame over HTTP.
//
// The headless radar command renders through PrefetchFactory so the frame
// engine's load waits reflect real tile server latency.
package tiles
