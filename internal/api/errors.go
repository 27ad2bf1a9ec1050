// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package api

import "errors"

var (
	// ErrRadarDisabled indicates the live radar view is not running.
	ErrRadarDisabled = errors.New("live radar view is disabled")

	// ErrHubUnavailable indicates the websocket hub was not configured.
	ErrHubUnavailable = errors.New("websocket hub unavailable")
)
