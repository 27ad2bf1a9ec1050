// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/circuitweather/internal/cache"
	"github.com/tomtom215/circuitweather/internal/config"
	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/proxy"
	ws "github.com/tomtom215/circuitweather/internal/websocket"
)

// RadarController is the live radar view as seen by the API.
type RadarController interface {
	Snapshot() ws.SnapshotData
	Control(ws.ControlData) bool
}

// Handler contains dependencies for the service endpoints.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, websocket upgrade
//   - handlers_health.go: health checks
//   - handlers_config.go: client endpoint configuration
//   - handlers_radar.go: live radar state and controls
type Handler struct {
	config     *config.Config
	gatekeeper *proxy.Gatekeeper
	store      cache.Store
	wsHub      *ws.Hub
	radar      RadarController
	version    string
	startTime  time.Time
}

// NewHandler creates a handler. hub and radar may be nil when the live
// radar view is disabled; the dependent endpoints then answer 503.
func NewHandler(cfg *config.Config, gatekeeper *proxy.Gatekeeper, store cache.Store, hub *ws.Hub, radar RadarController) *Handler {
	if store == nil {
		store = cache.NoopStore{}
	}
	return &Handler{
		config:     cfg,
		gatekeeper: gatekeeper,
		store:      store,
		wsHub:      hub,
		radar:      radar,
		version:    "dev",
		startTime:  time.Now(),
	}
}

// SetVersion sets the version reported by the health endpoint.
func (h *Handler) SetVersion(v string) {
	h.version = v
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout against slow clients.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin applies the same origin policy as the proxy CORS
// headers. Browsers always send Origin on websocket handshakes, so a
// missing header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.gatekeeper == nil {
		return true
	}
	if _, ok := h.gatekeeper.Allow(origin); ok {
		return true
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// WebSocket upgrades the connection and registers the client with the hub.
//
// @Summary Open the radar websocket
// @Description Streams snapshot, frame and layer_add/layer_opacity/layer_remove messages; accepts layer_loaded and control messages.
// @Tags Realtime
// @Success 101 "Switching protocols"
// @Failure 403 "Origin not allowed"
// @Failure 503 {object} api.APIResponse "Hub unavailable"
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		NewResponseWriter(w, r).ServiceUnavailable(ErrHubUnavailable.Error())
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
