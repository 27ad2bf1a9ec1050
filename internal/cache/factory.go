// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package cache

import (
	"fmt"

	"github.com/tomtom215/circuitweather/internal/config"
)

// Backend types accepted by Open.
const (
	TypeMemory   = "memory"
	TypeBadger   = "badger"
	TypeDisabled = "disabled"
)

// Open builds the store selected by cfg.Type.
func Open(cfg config.CacheConfig) (Store, error) {
	switch cfg.Type {
	case TypeMemory, "":
		return NewMemoryStore(cfg.MaxEntries), nil
	case TypeBadger:
		return OpenBadgerStore(cfg.BadgerPath)
	case TypeDisabled:
		return NoopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}
