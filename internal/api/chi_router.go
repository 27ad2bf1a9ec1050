// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/circuitweather/internal/middleware"
	"github.com/tomtom215/circuitweather/internal/proxy"
)

// Router mounts the service handlers and the edge proxy.
type Router struct {
	handler       *Handler
	proxy         *proxy.Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, proxyHandler *proxy.Handler, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		proxy:         proxyHandler,
		chiMiddleware: chiMiddleware,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// One limiter shared by every /api route
	limit := router.chiMiddleware.RateLimit()

	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)

	// Health, not rate limited so health checks never see 429
	r.Group(func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/health", router.handler.Health)
		r.Get("/health/live", router.handler.HealthLive)
		r.Get("/health/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI over the OpenAPI document registered by the docs package
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))
	r.Get("/ws", router.handler.WebSocket)

	// Service endpoints
	r.Group(func(r chi.Router) {
		r.Use(limit)
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/api/config", router.handler.Config)
		r.Get("/api/v1/radar/state", router.handler.RadarState)
		r.HandleFunc("/api/v1/radar/control", router.handler.RadarControl)
	})

	// Edge proxy. Security and CORS headers are set by the proxy handler.
	r.Group(func(r chi.Router) {
		r.Use(limit)
		r.Use(middleware.PrometheusMetrics)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.CORS())
			r.Get("/api/f1", router.proxy.Schedule)
			r.Get("/api/f1/*", router.proxy.Schedule)
			r.Options("/api/f1", router.proxy.Preflight)
			r.Options("/api/f1/*", router.proxy.Preflight)
		})

		r.Get("/api/radar", router.proxy.Radar)
		r.Get("/api/track/*", router.proxy.Track)
		r.Get("/api/weather", router.proxy.Forecast)

		r.HandleFunc("/api", router.proxy.NotFound)
		r.HandleFunc("/api/*", router.proxy.NotFound)
	})

	return r
}
