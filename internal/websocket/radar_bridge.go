// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package websocket

import (
	"github.com/goccy/go-json"

	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/metrics"
	"github.com/tomtom215/circuitweather/internal/radar"
)

// RadarBridge connects a live radar view to the hub: frame changes are
// broadcast, new clients get a snapshot, and inbound acks and controls are
// routed to the view.
type RadarBridge struct {
	hub     *Hub
	factory *RemoteLayerFactory
	view    *radar.View
}

// NewRadarBridge wires view to hub. factory must be the layer factory the
// view was built with.
func NewRadarBridge(hub *Hub, factory *RemoteLayerFactory, view *radar.View) *RadarBridge {
	b := &RadarBridge{hub: hub, factory: factory, view: view}

	view.Animator().OnFrame(b.onFrame)
	hub.SetHandlers(b.onConnect, b.onMessage)
	return b
}

func (b *RadarBridge) onFrame(ev radar.FrameEvent) {
	b.hub.BroadcastJSON(MessageTypeFrame, FrameData{
		FrameEvent: ev,
		Label:      b.view.Label(ev.Frame),
	})
}

func (b *RadarBridge) onConnect(c *Client) {
	b.hub.SendTo(c, MessageTypeSnapshot, b.Snapshot())
}

// Snapshot returns the state a newly connected client needs to render.
func (b *RadarBridge) Snapshot() SnapshotData {
	return SnapshotData{
		View:   b.view.Name(),
		State:  b.view.Animator().State(),
		Speeds: b.view.Animator().Speeds(),
		Layers: b.factory.Snapshot(),
	}
}

func (b *RadarBridge) onMessage(c *Client, msg InboundMessage) {
	switch msg.Type {
	case MessageTypeLayerLoaded:
		var data LayerLoadedData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.LayerID == "" {
			b.reject(c, "invalid layer_loaded message")
			return
		}
		b.factory.MarkLoaded(data.LayerID)

	case MessageTypeControl:
		var data ControlData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			b.reject(c, "invalid control message")
			return
		}
		if !b.Control(data) {
			b.reject(c, "unknown control action")
		}

	default:
		b.reject(c, "unknown message type")
	}
}

// Control applies a playback command. It reports false for unknown actions.
func (b *RadarBridge) Control(data ControlData) bool {
	a := b.view.Animator()
	switch data.Action {
	case ActionPlay:
		a.Play()
	case ActionPause:
		a.Pause()
	case ActionToggle:
		a.Toggle()
	case ActionSeek:
		a.Seek(data.Index)
	case ActionStep:
		a.Step(data.Delta)
	case ActionSpeed:
		a.SetSpeed(data.SpeedMs)
	case ActionCycle:
		a.CycleSpeed()
	default:
		return false
	}
	logging.Debug().Str("view", b.view.Name()).Str("action", data.Action).Msg("radar control applied")
	return true
}

func (b *RadarBridge) reject(c *Client, reason string) {
	metrics.WSErrors.WithLabelValues("bad_message").Inc()
	b.hub.SendTo(c, MessageTypeError, ErrorData{Message: reason})
}
