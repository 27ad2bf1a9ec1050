// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"context"
	"time"
)

// DefaultTileLoadTimeout is the ceiling on waiting for a layer to load.
const DefaultTileLoadTimeout = 3 * time.Second

// WaitForLoad blocks until layer signals load, timeout elapses or ctx ends.
// It reports whether the load signal arrived. A false result is not an
// error: callers proceed as if the layer were ready.
func WaitForLoad(ctx context.Context, layer Layer, timeout time.Duration) bool {
	if layer == nil {
		return false
	}
	if timeout <= 0 {
		timeout = DefaultTileLoadTimeout
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-layer.Loaded():
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}
