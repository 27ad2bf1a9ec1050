// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package proxy

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/circuitweather/internal/cache"
	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/metrics"
)

// storeTimeout bounds the asynchronous cache write after a miss.
const storeTimeout = 5 * time.Second

// ErrorBody is the only shape of error sent to clients.
type ErrorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

// Handler serves the four proxied resource families.
type Handler struct {
	targets    Targets
	store      cache.Store
	upstream   Fetcher
	gatekeeper *Gatekeeper

	// wg tracks in-flight cache writes.
	wg  sync.WaitGroup
	now func() time.Time
}

// NewHandler creates a proxy handler. A nil store disables caching.
func NewHandler(targets Targets, store cache.Store, upstream Fetcher, gatekeeper *Gatekeeper) *Handler {
	if store == nil {
		store = cache.NoopStore{}
	}
	return &Handler{
		targets:    targets,
		store:      store,
		upstream:   upstream,
		gatekeeper: gatekeeper,
		now:        time.Now,
	}
}

// Schedule handles GET /api/f1/*. The client query string is not forwarded.
//
// @Summary Proxy race schedule data
// @Description Proxies the race schedule API. Segments are restricted to [a-zA-Z0-9/._-], no "..", no "//", max 255 characters. An empty path proxies "current". Cached for 3600s.
// @Tags Proxy
// @Produce json
// @Param segments path string true "Schedule path segments, e.g. 2024/1/results.json"
// @Success 200 {object} object "Upstream schedule JSON"
// @Header 200 {string} X-Cache "HIT or MISS"
// @Failure 400 {object} proxy.ErrorBody "Invalid API path"
// @Failure 502 {object} proxy.ErrorBody "Upstream unreachable"
// @Router /api/f1/{segments} [get]
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	target, err := h.targets.ScheduleURL(chi.URLParam(r, "*"))
	if err != nil {
		h.rejectInvalid(w, r, Schedule, err)
		return
	}
	h.serve(w, r, Schedule, target)
}

// Radar handles GET /api/radar. There is no client input.
//
// @Summary Proxy the radar frame manifest
// @Description Returns {host, radar: {past, nowcast}} with {time, path} frame items. Cached for 60s under one canonical key.
// @Tags Proxy
// @Produce json
// @Success 200 {object} object "Radar manifest"
// @Header 200 {string} X-Cache "HIT or MISS"
// @Failure 502 {object} proxy.ErrorBody "Upstream unreachable"
// @Router /api/radar [get]
func (h *Handler) Radar(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, Radar, h.targets.RadarURL())
}

// Track handles GET /api/track/*. A nested path such as "a/b" is an
// invalid id, not an unknown route.
//
// @Summary Proxy circuit track geometry
// @Description Returns the GeoJSON outline of a circuit. Cached for 86400s. Upstream 404 passes through; other upstream failures answer 502.
// @Tags Proxy
// @Produce json
// @Param id path string true "Track id matching ^[a-z0-9-]+$, at most 50 characters"
// @Success 200 {object} object "GeoJSON FeatureCollection"
// @Failure 400 {object} proxy.ErrorBody "Invalid track id"
// @Failure 404 {object} proxy.ErrorBody "Track not found"
// @Failure 502 {object} proxy.ErrorBody "Upstream failure"
// @Router /api/track/{id} [get]
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	target, err := h.targets.TrackURL(chi.URLParam(r, "*"))
	if err != nil {
		h.rejectInvalid(w, r, Track, err)
		return
	}
	h.serve(w, r, Track, target)
}

// Forecast handles GET /api/weather?lat=&lon=.
//
// @Summary Proxy a point forecast
// @Description Returns the hourly forecast for a coordinate. Equivalent coordinates share one cache entry. Cached for 900s.
// @Tags Proxy
// @Produce json
// @Param lat query string true "Latitude matching ^-?\d+(\.\d+)?$"
// @Param lon query string true "Longitude matching ^-?\d+(\.\d+)?$"
// @Success 200 {object} object "Upstream forecast JSON"
// @Failure 400 {object} proxy.ErrorBody "Invalid coordinates"
// @Failure 502 {object} proxy.ErrorBody "Upstream unreachable"
// @Router /api/weather [get]
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target, err := h.targets.ForecastURL(q.Get("lat"), q.Get("lon"))
	if err != nil {
		h.rejectInvalid(w, r, Forecast, err)
		return
	}
	h.serve(w, r, Forecast, target)
}

// NotFound answers unknown /api routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound, ErrorBody{Error: "API endpoint not found"})
}

// Preflight answers OPTIONS on the schedule family. go-chi/cors has already
// decided the origin; allowed origins get the fixed method and header lists
// rather than an echo of what the browser asked for.
//
// @Summary CORS preflight for the schedule proxy
// @Tags Proxy
// @Param segments path string true "Schedule path segments"
// @Success 204 "Allow-Methods GET, OPTIONS; Allow-Headers Content-Type; Max-Age 86400 for allowed origins"
// @Router /api/f1/{segments} [options]
func (h *Handler) Preflight(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	setSecurityHeaders(header)
	h.gatekeeper.Apply(header, r.Header.Get("Origin"))
	if header.Get("Access-Control-Allow-Origin") != "" {
		header.Set("Access-Control-Allow-Methods", preflightMethods)
		header.Set("Access-Control-Allow-Headers", preflightHeaders)
		header.Set("Access-Control-Max-Age", preflightMaxAge)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Wait blocks until pending cache writes finish.
func (h *Handler) Wait() {
	h.wg.Wait()
}

func (h *Handler) rejectInvalid(w http.ResponseWriter, r *http.Request, res Resource, err error) {
	msg := "Invalid request"
	var verr *ValidationError
	if errors.As(err, &verr) {
		msg = verr.Message
	}
	logging.Ctx(r.Context()).Debug().Str("resource", res.Name).Err(err).Msg("Rejected proxy request")
	h.writeError(w, r, http.StatusBadRequest, ErrorBody{Error: msg})
	metrics.RecordProxyRequest(res.Name, "none", http.StatusBadRequest)
}

// serve runs the cache-then-upstream algorithm for a validated target URL.
// The target doubles as the canonical cache key.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, res Resource, target string) {
	ctx := r.Context()
	origin := r.Header.Get("Origin")
	logger := logging.Ctx(ctx)

	entry, err := h.store.Get(ctx, target)
	switch {
	case err == nil:
		status := entry.Status
		if status == 0 {
			status = http.StatusOK
		}
		h.write(w, h.clientHeaders(entry.Header, res, cacheHit, origin), status, entry.Body)
		metrics.RecordProxyRequest(res.Name, "hit", status)
		return
	case !errors.Is(err, cache.ErrCacheMiss):
		logger.Warn().Err(err).Str("resource", res.Name).Str("backend", h.store.Name()).Msg("Cache read failed")
		metrics.CacheStoreErrors.WithLabelValues(h.store.Name(), "get").Inc()
	}

	resp, err := h.upstream.Fetch(ctx, res.Name, target)
	if resp == nil {
		logger.Error().Err(err).Str("resource", res.Name).Msg("Upstream fetch failed")
		h.writeError(w, r, http.StatusBadGateway, ErrorBody{Error: res.transportMessage})
		metrics.RecordProxyRequest(res.Name, "miss", http.StatusBadGateway)
		return
	}

	if resp.Status < 200 || resp.Status > 299 {
		status, msg := res.clientStatus(resp.Status)
		logger.Warn().Int("upstream_status", resp.Status).Int("status", status).Str("resource", res.Name).Msg("Upstream returned error status")
		h.writeError(w, r, status, ErrorBody{Error: msg, Status: resp.Status})
		metrics.RecordProxyRequest(res.Name, "miss", status)
		return
	}

	stored := &cache.Entry{
		Status:   resp.Status,
		Header:   storedHeaders(res),
		Body:     resp.Body,
		StoredAt: h.now(),
		TTL:      res.TTL,
	}
	h.storeAsync(target, res, stored)

	h.write(w, h.clientHeaders(stored.Header, res, cacheMiss, origin), resp.Status, resp.Body)
	metrics.RecordProxyRequest(res.Name, "miss", resp.Status)
}

// storeAsync writes the entry without holding up the response.
func (h *Handler) storeAsync(key string, res Resource, entry *cache.Entry) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := h.store.Put(ctx, key, entry); err != nil {
			logging.Warn().Err(err).Str("resource", res.Name).Str("backend", h.store.Name()).Msg("Cache write failed")
			metrics.CacheStoreErrors.WithLabelValues(h.store.Name(), "put").Inc()
		}
	}()
}

func (h *Handler) write(w http.ResponseWriter, header http.Header, status int, body []byte) {
	dst := w.Header()
	for k, v := range header {
		dst[k] = v
	}
	w.WriteHeader(status)
	//nolint:errcheck // HTTP response write errors are not recoverable
	w.Write(body)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, body ErrorBody) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal error body")
		data = []byte(`{"error":"Internal error"}`)
	}
	h.write(w, h.errorHeaders(r.Header.Get("Origin")), status, data)
}
