// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/circuitweather/internal/config"
	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/radar"
	"github.com/tomtom215/circuitweather/internal/supervisor"
	"github.com/tomtom215/circuitweather/internal/supervisor/services"
	"github.com/tomtom215/circuitweather/internal/tiles"
)

const headlessViewName = "headless"

type radarFlags struct {
	lat      float64
	lon      float64
	zoom     int
	session  string
	timezone string
}

func newRadarCmd(load func() (*config.Config, error)) *cobra.Command {
	var flags radarFlags

	cmd := &cobra.Command{
		Use:   "radar",
		Short: "Run a headless radar view that prefetches one tile per frame",
		Long: `Drive the radar frame engine against the manifest source without a browser.
Every frame gets a tile layer that fetches the tile covering --lat/--lon at
--zoom, warming the tile CDN. Frame changes are logged.

The manifest is read from radar.proxy_base_url + /api/radar when that is
set, and from upstream.radar_url otherwise. No local proxy is started.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			applyRadarFlags(cmd, &flags, cfg)

			var opts []radar.ViewOption
			if flags.timezone != "" {
				loc, err := time.LoadLocation(flags.timezone)
				if err != nil {
					return fmt.Errorf("load timezone: %w", err)
				}
				opts = append(opts, radar.WithLocation(loc))
			}

			var session time.Time
			if flags.session != "" {
				session, err = time.Parse(time.RFC3339, flags.session)
				if err != nil {
					return fmt.Errorf("parse --session: %w", err)
				}
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return runRadar(ctx, cfg, session, opts...)
		},
	}

	cmd.Flags().Float64Var(&flags.lat, "lat", 0, "latitude of the prefetched tile (default radar.prefetch_lat)")
	cmd.Flags().Float64Var(&flags.lon, "lon", 0, "longitude of the prefetched tile (default radar.prefetch_lon)")
	cmd.Flags().IntVar(&flags.zoom, "zoom", 0, "zoom of the prefetched tile, capped at the radar's native zoom (default radar.prefetch_zoom)")
	cmd.Flags().StringVar(&flags.session, "session", "", "session start time (RFC3339) used for frame labels")
	cmd.Flags().StringVar(&flags.timezone, "tz", "", "IANA time zone for frame labels (default UTC)")
	return cmd
}

// applyRadarFlags overrides cfg with the flags the user set.
func applyRadarFlags(cmd *cobra.Command, flags *radarFlags, cfg *config.Config) {
	if cmd.Flags().Changed("lat") {
		cfg.Radar.PrefetchLat = flags.lat
	}
	if cmd.Flags().Changed("lon") {
		cfg.Radar.PrefetchLon = flags.lon
	}
	if cmd.Flags().Changed("zoom") {
		cfg.Radar.PrefetchZoom = flags.zoom
	}
}

func prefetchConfig(cfg *config.Config) tiles.PrefetchConfig {
	return tiles.PrefetchConfig{
		Lat:               cfg.Radar.PrefetchLat,
		Lon:               cfg.Radar.PrefetchLon,
		Zoom:              cfg.Radar.PrefetchZoom,
		UserAgent:         cfg.Upstream.UserAgent,
		Timeout:           cfg.Upstream.Timeout,
		RequestsPerSecond: cfg.Upstream.RequestsPerSecond,
		Burst:             cfg.Upstream.Burst,
	}
}

func runRadar(ctx context.Context, cfg *config.Config, session time.Time, opts ...radar.ViewOption) error {
	factory := tiles.NewPrefetchFactory(prefetchConfig(cfg), nil)
	source := radar.NewHTTPSource(cfg.HeadlessManifestURL(),
		&http.Client{Timeout: cfg.Upstream.Timeout}, cfg.Upstream.UserAgent, cfg.Radar.TileSize)
	view := radar.NewView(viewConfig(headlessViewName, cfg.Radar), source, factory, opts...)
	view.SetSessionTime(session)

	view.Animator().OnFrame(func(ev radar.FrameEvent) {
		label := view.Label(ev.Frame)
		logging.Info().
			Str("cause", ev.Cause).
			Int("index", ev.Index).
			Int("frames", ev.FrameCount).
			Bool("forecast", ev.Index >= ev.ForecastBoundary).
			Str("clock", label.Clock).
			Str("relative", label.Relative).
			Msg("Radar frame")
	})

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddMessagingService(services.NewRadarViewService(view))

	logging.Info().
		Str("manifest", source.URL()).
		Float64("lat", cfg.Radar.PrefetchLat).
		Float64("lon", cfg.Radar.PrefetchLon).
		Int("zoom", cfg.Radar.PrefetchZoom).
		Msg("Starting headless radar view")

	waitForTree(ctx, tree, tree.ServeBackground(ctx))
	factory.Wait()

	logging.Info().Msg("Headless radar view stopped")
	return nil
}
