// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/circuitweather/internal/cache"
)

// readinessCheckKey is looked up to check the cache backend answers.
const readinessCheckKey = "health:ready"

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	CacheBackend  string  `json:"cache_backend"`
	CacheHealthy  bool    `json:"cache_healthy"`
	RadarEnabled  bool    `json:"radar_enabled"`
	RadarFrames   int     `json:"radar_frames"`
	RadarPlaying  bool    `json:"radar_playing"`
	WSClients     int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Health reports overall status. It always answers 200; Status is
// "degraded" when the cache backend fails its readiness check.
//
// @Summary Get service health
// @Tags Core
// @Produce json
// @Success 200 {object} api.APIResponse{data=api.HealthStatus} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	cacheOK := h.cacheHealthy(r.Context())

	status := HealthStatus{
		Status:        "healthy",
		Version:       h.version,
		CacheBackend:  h.store.Name(),
		CacheHealthy:  cacheOK,
		RadarEnabled:  h.radar != nil,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if !cacheOK {
		status.Status = "degraded"
	}
	if h.radar != nil {
		snap := h.radar.Snapshot()
		status.RadarFrames = snap.State.FrameCount
		status.RadarPlaying = snap.State.Playing
	}
	if h.wsHub != nil {
		status.WSClients = h.wsHub.GetClientCount()
	}

	WriteSuccess(w, r, status)
}

// HealthLive handles liveness checks. It returns 200 while the process is alive.
//
// @Summary Liveness check
// @Tags Core
// @Produce json
// @Success 200 {object} api.APIResponse "Process is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness checks. It returns 503 until the cache
// backend answers.
//
// @Summary Readiness check
// @Tags Core
// @Produce json
// @Success 200 {object} api.APIResponse "Cache backend answers"
// @Failure 503 {object} api.APIResponse "Cache backend unavailable"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.cacheHealthy(r.Context())

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}
	NewResponseWriter(w, r).SuccessWithStatus(statusCode, map[string]interface{}{
		"ready_to_serve": ready,
		"cache_backend":  h.store.Name(),
	})
}

func (h *Handler) cacheHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, err := h.store.Get(ctx, readinessCheckKey)
	return err == nil || errors.Is(err, cache.ErrCacheMiss)
}
