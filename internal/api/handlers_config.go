// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package api

import (
	"net/http"

	"github.com/tomtom215/circuitweather/internal/config"
)

// ClientConfig is the body of GET /api/config.
type ClientConfig struct {
	Endpoints       config.Endpoints `json:"endpoints"`
	RadarSpeeds     []int            `json:"radar_speeds"`
	RadarSpeedMs    int              `json:"radar_speed_ms"`
	RadarOpacity    float64          `json:"radar_opacity"`
	RadarLive       bool             `json:"radar_live"`
	RadarTileSize   int              `json:"radar_tile_size"`
	PollIntervalSec int              `json:"poll_interval_seconds"`
}

// Config tells browsers where each data family lives: the third-party APIs
// in dev mode, the /api/* proxy otherwise.
//
// @Summary Get client configuration
// @Description Base URLs for each data family and the radar playback settings.
// @Tags Core
// @Produce json
// @Success 200 {object} api.APIResponse{data=api.ClientConfig} "Client configuration"
// @Router /api/config [get]
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	if h.config == nil {
		NewResponseWriter(w, r).ServiceUnavailable("configuration not loaded")
		return
	}

	rc := h.config.Radar
	WriteSuccess(w, r, ClientConfig{
		Endpoints:       h.config.Endpoints(),
		RadarSpeeds:     rc.SpeedPresets,
		RadarSpeedMs:    rc.SpeedMs,
		RadarOpacity:    rc.Opacity,
		RadarLive:       rc.LiveEnabled,
		RadarTileSize:   rc.TileSize,
		PollIntervalSec: int(rc.PollInterval.Seconds()),
	})
}
