// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package config

import "strings"

// Proxy paths served by the edge cache proxy.
const (
	SchedulePath = "/api/f1/"
	RadarPath    = "/api/radar"
	TrackPath    = "/api/track/"
	ForecastPath = "/api/weather"
)

// Endpoints are the base URLs a client uses to reach each data family.
type Endpoints struct {
	Dev      bool   `json:"dev"`
	Schedule string `json:"schedule"`
	Radar    string `json:"radar"`
	Track    string `json:"track"`
	Forecast string `json:"forecast"`
}

// Endpoints returns browser-facing base URLs. With Dev set the browser
// talks to the third-party APIs directly; otherwise it goes through the
// same-origin /api/* proxy paths.
func (c *Config) Endpoints() Endpoints {
	if c.Dev {
		return Endpoints{
			Dev:      true,
			Schedule: withTrailingSlash(c.Upstream.ScheduleURL),
			Radar:    c.Upstream.RadarURL,
			Track:    withTrailingSlash(c.Upstream.TrackURL),
			Forecast: c.Upstream.ForecastURL,
		}
	}
	return Endpoints{
		Schedule: SchedulePath,
		Radar:    RadarPath,
		Track:    TrackPath,
		Forecast: ForecastPath,
	}
}

// RadarManifestURL returns the manifest URL for the live radar view inside
// serve. Outside dev mode the request goes through the proxy at
// Radar.ProxyBaseURL, or the local server when that is empty.
func (c *Config) RadarManifestURL() string {
	if c.Dev {
		return c.Upstream.RadarURL
	}
	return c.proxyBase() + RadarPath
}

// HeadlessManifestURL returns the manifest URL for the standalone radar
// command. No local server runs alongside it, so only an explicit
// Radar.ProxyBaseURL routes through a proxy; otherwise it reads the
// upstream directly.
func (c *Config) HeadlessManifestURL() string {
	if c.Dev || c.Radar.ProxyBaseURL == "" {
		return c.Upstream.RadarURL
	}
	return c.proxyBase() + RadarPath
}

func (c *Config) proxyBase() string {
	if c.Radar.ProxyBaseURL != "" {
		return strings.TrimSuffix(c.Radar.ProxyBaseURL, "/")
	}
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + joinHostPort(host, c.Server.Port)
}
