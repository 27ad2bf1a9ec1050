// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/circuitweather/internal/api"
	"github.com/tomtom215/circuitweather/internal/cache"
	"github.com/tomtom215/circuitweather/internal/config"
	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/metrics"
	"github.com/tomtom215/circuitweather/internal/proxy"
	"github.com/tomtom215/circuitweather/internal/radar"
	"github.com/tomtom215/circuitweather/internal/supervisor"
	"github.com/tomtom215/circuitweather/internal/supervisor/services"
	ws "github.com/tomtom215/circuitweather/internal/websocket"
)

const liveViewName = "live"

func newServeCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the edge cache proxy and the live radar view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return runServe(ctx, cfg)
		},
	}
}

//nolint:gocyclo // Sequential wiring of every component
func runServe(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("version", getVersion()).
		Str("environment", cfg.Server.Environment).
		Bool("dev", cfg.Dev).
		Str("cache", cfg.Cache.Type).
		Bool("live_radar", cfg.Radar.LiveEnabled).
		Msg("Starting Circuit Weather")
	metrics.AppInfo.WithLabelValues(getVersion(), runtime.Version()).Set(1)

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing cache")
		}
	}()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (security.rate_limit_disabled=true)")
	}

	gatekeeper := proxy.NewGatekeeper(cfg.Server.ProductionOrigin)
	proxyHandler := proxy.NewHandler(proxy.NewTargets(cfg.Upstream), store, proxy.NewUpstream(cfg.Upstream), gatekeeper)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.Timeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	addCacheMaintenance(tree, cfg.Cache, store)

	hub := ws.NewHub()
	tree.AddMessagingService(services.NewWebSocketHubService(hub))

	var controller api.RadarController
	if cfg.Radar.LiveEnabled {
		factory := ws.NewRemoteLayerFactory(liveViewName, hub)
		source := radar.NewHTTPSource(cfg.RadarManifestURL(),
			&http.Client{Timeout: cfg.Upstream.Timeout}, cfg.Upstream.UserAgent, cfg.Radar.TileSize)
		view := radar.NewView(viewConfig(liveViewName, cfg.Radar), source, factory)

		controller = ws.NewRadarBridge(hub, factory, view)
		tree.AddMessagingService(services.NewRadarViewService(view))
		logging.Info().Str("manifest", source.URL()).Msg("Live radar view enabled")
	}

	handler := api.NewHandler(cfg, gatekeeper, store, hub, controller)
	handler.SetVersion(getVersion())

	chiMW := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		AllowOrigin:       gatekeeper.AllowOriginFunc,
		RateLimitRequests: cfg.Security.RateLimitReqs,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
	})
	router := api.NewRouter(handler, proxyHandler, chiMW)

	// Bind before the tree starts so the live view's first manifest request
	// through the local proxy queues on the listener instead of failing.
	ln, err := net.Listen("tcp", cfg.ListenAddr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddr(), err)
	}
	srv := &boundServer{
		Server: &http.Server{
			Addr:              cfg.ListenAddr(),
			Handler:           router.SetupChi(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.Server.Timeout,
			IdleTimeout:       120 * time.Second,
		},
		ln: ln,
	}
	httpSvc := services.NewHTTPServerService(srv, cfg.Server.Timeout)
	httpSvc.SetDrain(proxyHandler.Wait)
	tree.AddAPIService(httpSvc)

	logging.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")

	errCh := tree.ServeBackground(ctx)
	waitForTree(ctx, tree, errCh)

	logging.Info().Msg("Application stopped gracefully")
	return nil
}

func viewConfig(name string, cfg config.RadarConfig) radar.ViewConfig {
	return radar.ViewConfig{
		Name:            name,
		SpeedMs:         cfg.SpeedMs,
		Speeds:          cfg.SpeedPresets,
		Opacity:         cfg.Opacity,
		TileSize:        cfg.TileSize,
		PollInterval:    cfg.PollInterval,
		TileLoadTimeout: cfg.TileLoadTimeout,
	}
}

// addCacheMaintenance registers the periodic job matching the store type.
func addCacheMaintenance(tree *supervisor.SupervisorTree, cfg config.CacheConfig, store cache.Store) {
	switch s := store.(type) {
	case *cache.BadgerStore:
		tree.AddDataService(services.NewBadgerGCService(s, cfg.GCInterval))
	case *cache.MemoryStore:
		tree.AddDataService(services.NewCacheJanitorService(s, cfg.CleanupInterval))
	}
}

// boundServer serves on a pre-bound listener the first time and binds a
// fresh one if the supervisor restarts it.
type boundServer struct {
	*http.Server

	mu sync.Mutex
	ln net.Listener
}

func (s *boundServer) ListenAndServe() error {
	s.mu.Lock()
	ln := s.ln
	s.ln = nil
	s.mu.Unlock()

	if ln == nil {
		return s.Server.ListenAndServe()
	}
	return s.Server.Serve(ln)
}

func waitForTree(ctx context.Context, tree *supervisor.SupervisorTree, errCh <-chan error) {
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
}
