// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

//go:generate swag init -g docs.go -d ./,../../internal/api,../../internal/proxy -o ../../docs

// Package main provides the Circuit Weather HTTP server
//
// Circuit Weather API serves race schedules, circuit geometry, point
// forecasts and radar manifests through a caching edge proxy, plus a live
// radar frame engine over websocket.
//
// @title Circuit Weather API
// @version 1.0
// @description Edge cache proxy and radar frame engine for motorsport circuit weather
// @description
// @description ## Caching
// @description
// @description Proxied responses carry `X-Cache: HIT` or `X-Cache: MISS`.
// @description Freshness windows: schedule 3600s, radar 60s, track 86400s, forecast 900s.
// @description
// @description ## Rate Limiting
// @description
// @description Every /api route shares one per-IP limiter. Health checks are never limited.
// @description
// @description ## Error Responses
// @description
// @description Proxy errors are `{"error": "...", "status": 400}`.
// @description Service errors use the APIResponse envelope with `success: false`.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/circuitweather/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8787
// @BasePath /
// @schemes http https
//
// @tag.name Core
// @tag.description Health checks and client configuration
//
// @tag.name Proxy
// @tag.description Cached pass-through to the schedule, radar, track and forecast upstreams
//
// @tag.name Radar
// @tag.description Live radar playback state and control
//
// @tag.name Realtime
// @tag.description WebSocket stream of radar snapshots, frames and layer commands
package main
