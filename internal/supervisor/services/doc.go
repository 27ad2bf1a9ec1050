// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

/*
Package services provides suture.Service wrappers for Circuit Weather components.

Each wrapper translates a component lifecycle (ListenAndServe, RunWithContext,
Start/Stop, a ticker loop) into suture's context-aware Serve method and names
itself through fmt.Stringer for supervisor logs.

# Available Services

HTTPServerService wraps *http.Server. Cancellation triggers Shutdown with a
timeout, then the optional drain hook runs so in-flight proxy cache writes
finish before the process exits. A server that stops on its own returns an
error and is restarted.

WebSocketHubService runs the hub's RunWithContext loop.

StartStopService adapts components with a non-blocking Start and a blocking
Stop. NewRadarViewService uses it for the live radar view.

PeriodicService runs a task on an interval and logs task failures:

	svc := services.NewBadgerGCService(badgerStore, 5*time.Minute)
	tree.AddDataService(svc)

NewCacheJanitorService evicts expired entries from the in-memory cache.
*/
package services
