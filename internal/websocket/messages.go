// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package websocket

import "github.com/tomtom215/circuitweather/internal/radar"

// Message types for WebSocket communication
const (
	MessageTypePing = "ping"
	MessageTypePong = "pong"

	// Server to client.
	MessageTypeLayerAdd     = "layer_add"
	MessageTypeLayerOpacity = "layer_opacity"
	MessageTypeLayerRemove  = "layer_remove"
	MessageTypeFrame        = "frame"
	MessageTypeSnapshot     = "snapshot"
	MessageTypeError        = "error"

	// Client to server.
	MessageTypeLayerLoaded = "layer_loaded"
	MessageTypeControl     = "control"
)

// Control actions accepted in a control message.
const (
	ActionPlay   = "play"
	ActionPause  = "pause"
	ActionToggle = "toggle"
	ActionSeek   = "seek"
	ActionStep   = "step"
	ActionSpeed  = "speed"
	ActionCycle  = "cycle_speed"
)

// LayerAddData asks clients to create and attach a tile layer.
type LayerAddData struct {
	View      string             `json:"view"`
	LayerID   string             `json:"layer_id"`
	Index     int                `json:"index"`
	Timestamp int64              `json:"time"`
	URL       string             `json:"url"`
	Options   radar.LayerOptions `json:"options"`

	// Opacity is the layer's current opacity; equal to Options.Opacity
	// until the first change.
	Opacity float64 `json:"opacity"`
}

// LayerOpacityData changes one layer's opacity.
type LayerOpacityData struct {
	View    string  `json:"view"`
	LayerID string  `json:"layer_id"`
	Opacity float64 `json:"opacity"`
}

// LayerRemoveData detaches one layer.
type LayerRemoveData struct {
	View    string `json:"view"`
	LayerID string `json:"layer_id"`
}

// FrameData announces a visible frame change.
type FrameData struct {
	radar.FrameEvent
	Label radar.Label `json:"label"`
}

// SnapshotData is sent to a client when it connects.
type SnapshotData struct {
	View   string               `json:"view"`
	State  radar.AnimationState `json:"state"`
	Speeds []int                `json:"speeds"`
	Layers []LayerAddData       `json:"layers"`
}

// LayerLoadedData acknowledges that a client finished loading a layer.
type LayerLoadedData struct {
	LayerID string `json:"layer_id"`
}

// ControlData is a playback command from a client.
type ControlData struct {
	Action  string `json:"action"`
	Index   int    `json:"index,omitempty"`
	Delta   int    `json:"delta,omitempty"`
	SpeedMs int    `json:"speed_ms,omitempty"`
}

// ErrorData reports a rejected client message.
type ErrorData struct {
	Message string `json:"message"`
}
