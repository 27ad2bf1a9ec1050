// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

// Package logging provides centralized zerolog-based structured logging.
//
// A single global logger is configured once from main via Init and used by
// every package through the level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("upstream fetch failed")
//
// Ctx attaches the request_id and correlation_id installed by the API
// middleware. NewSlogLogger bridges the logger to log/slog for the suture
// supervisor event hook.
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
