// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package proxy

import (
	"net/http"
	"time"
)

// Resource describes one upstream family served by the proxy.
type Resource struct {
	// Name labels logs, metrics and circuit breakers.
	Name string

	// TTL is both the cache lifetime and the client max-age.
	TTL time.Duration

	// upstreamMessage is the generic body for a non-2xx upstream answer.
	upstreamMessage string

	// transportMessage is the generic body for a failed fetch.
	transportMessage string

	// notFoundOnly collapses every upstream failure except 404 into 502.
	notFoundOnly bool
}

// Resource families.
var (
	Schedule = Resource{
		Name:             "schedule",
		TTL:              3600 * time.Second,
		upstreamMessage:  "Upstream API error",
		transportMessage: "Failed to fetch from upstream",
	}
	Radar = Resource{
		Name:             "radar",
		TTL:              60 * time.Second,
		upstreamMessage:  "Radar upstream error",
		transportMessage: "Failed to fetch radar data",
	}
	Track = Resource{
		Name:             "track",
		TTL:              86400 * time.Second,
		upstreamMessage:  "Failed to fetch track data",
		transportMessage: "Failed to fetch track data",
		notFoundOnly:     true,
	}
	Forecast = Resource{
		Name:             "forecast",
		TTL:              900 * time.Second,
		upstreamMessage:  "Forecast upstream error",
		transportMessage: "Failed to fetch forecast data",
	}
)

// Resources lists every family, in routing order.
var Resources = []Resource{Schedule, Radar, Track, Forecast}

// clientStatus maps a non-2xx upstream status to the status returned to the
// client, along with the generic message for the body.
func (r Resource) clientStatus(upstream int) (int, string) {
	if r.notFoundOnly {
		if upstream == http.StatusNotFound {
			return http.StatusNotFound, "Track not found"
		}
		return http.StatusBadGateway, r.upstreamMessage
	}
	return upstream, r.upstreamMessage
}
