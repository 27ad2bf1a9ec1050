// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package api

import (
	"net/http"

	"github.com/tomtom215/circuitweather/internal/logging"
	ws "github.com/tomtom215/circuitweather/internal/websocket"
)

// RadarControlRequest is the body of POST /api/v1/radar/control.
type RadarControlRequest struct {
	Action  string `json:"action" validate:"required,oneof=play pause toggle seek step speed cycle_speed"`
	Index   int    `json:"index" validate:"min=0,max=1000"`
	Delta   int    `json:"delta" validate:"min=-1000,max=1000"`
	SpeedMs int    `json:"speed_ms" validate:"omitempty,min=50,max=60000"`
}

// RadarState returns the live radar view snapshot.
//
// @Summary Get live radar state
// @Tags Radar
// @Produce json
// @Success 200 {object} api.APIResponse{data=ws.SnapshotData} "Radar snapshot"
// @Failure 503 {object} api.APIResponse "Live radar disabled"
// @Router /api/v1/radar/state [get]
func (h *Handler) RadarState(w http.ResponseWriter, r *http.Request) {
	if h.radar == nil {
		NewResponseWriter(w, r).ServiceUnavailable(ErrRadarDisabled.Error())
		return
	}
	WriteSuccess(w, r, h.radar.Snapshot())
}

// RadarControl applies a playback command to the live radar view and
// returns the resulting snapshot.
//
// @Summary Control live radar playback
// @Tags Radar
// @Accept json
// @Produce json
// @Param request body api.RadarControlRequest true "Playback command"
// @Success 200 {object} api.APIResponse{data=ws.SnapshotData} "Radar snapshot after the command"
// @Failure 400 {object} api.APIResponse "Invalid command"
// @Failure 405 {object} api.APIResponse "Method not allowed"
// @Failure 503 {object} api.APIResponse "Live radar disabled"
// @Router /api/v1/radar/control [post]
func (h *Handler) RadarControl(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	rw := NewResponseWriter(w, r)
	if h.radar == nil {
		rw.ServiceUnavailable(ErrRadarDisabled.Error())
		return
	}

	var req RadarControlRequest
	if err := decodeJSONBody(r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if errs := validateRequest(&req); errs != nil {
		rw.ValidationError("invalid radar control request", errs)
		return
	}
	if req.Action == ws.ActionSpeed && req.SpeedMs == 0 {
		rw.ValidationError("invalid radar control request", []FieldError{{
			Field: "SpeedMs", Tag: "required", Message: "speed_ms is required for the speed action",
		}})
		return
	}

	if !h.radar.Control(ws.ControlData{
		Action:  req.Action,
		Index:   req.Index,
		Delta:   req.Delta,
		SpeedMs: req.SpeedMs,
	}) {
		rw.BadRequest("unknown control action")
		return
	}

	logging.Ctx(r.Context()).Debug().Str("action", req.Action).Msg("radar control via API")
	rw.Success(h.radar.Snapshot())
}
