// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	_ "github.com/tomtom215/circuitweather/docs" // Import generated swagger docs
	"github.com/tomtom215/circuitweather/internal/config"
	"github.com/tomtom215/circuitweather/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "circuitweather",
		Short:         "Motorsport circuit radar and edge cache proxy",
		Long:          longHelp,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var cfgPath string
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: config.yaml, /etc/circuitweather/config.yaml, $CONFIG_PATH)")

	load := func() (*config.Config, error) {
		if cfgPath != "" {
			if err := os.Setenv(config.ConfigPathEnvVar, cfgPath); err != nil {
				return nil, fmt.Errorf("set config path: %w", err)
			}
		}
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		logging.Init(logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Caller: cfg.Logging.Caller,
		})
		return cfg, nil
	}

	root.AddCommand(
		newServeCmd(load),
		newRadarCmd(load),
		newVersionCmd(),
	)
	return root
}

const longHelp = `Circuit Weather serves race schedules, circuit maps, forecasts and an
animated precipitation radar for motorsport circuits.

  serve    run the edge cache proxy, the live radar view and the websocket hub
  radar    run a headless radar view that prefetches one tile per frame`
