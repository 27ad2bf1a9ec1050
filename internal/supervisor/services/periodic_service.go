// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/circuitweather/internal/cache"
	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/metrics"
)

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// PeriodicService runs a task on a fixed interval. Task errors are logged
// and do not stop the service; the supervisor only sees cancellation.
type PeriodicService struct {
	name     string
	interval time.Duration
	task     Task
}

// NewPeriodicService creates a service that runs task every interval.
// A non-positive interval means one minute.
func NewPeriodicService(name string, interval time.Duration, task Task) *PeriodicService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PeriodicService{name: name, interval: interval, task: task}
}

// Serve implements suture.Service.
func (p *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.task(ctx); err != nil && ctx.Err() == nil {
				logging.Warn().Err(err).Str("service", p.name).Msg("periodic task failed")
			}
		}
	}
}

func (p *PeriodicService) String() string {
	return p.name
}

// GarbageCollector is a store with a value-log GC pass.
type GarbageCollector interface {
	RunGC() error
}

// NewBadgerGCService reclaims badger value-log space every interval.
// badger.ErrNoRewrite means there was nothing to reclaim and is not logged.
func NewBadgerGCService(store GarbageCollector, interval time.Duration) *PeriodicService {
	return NewPeriodicService("badger-gc", interval, func(context.Context) error {
		if err := store.RunGC(); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			return err
		}
		return nil
	})
}

// ExpiringStore drops expired entries on demand and counts its lookups.
type ExpiringStore interface {
	Name() string
	CleanupExpired() int
	Stats() cache.Stats
}

// NewCacheJanitorService removes expired memory cache entries every interval
// and then publishes the store's hit, miss and entry gauges.
func NewCacheJanitorService(store ExpiringStore, interval time.Duration) *PeriodicService {
	return NewPeriodicService("cache-janitor", interval, func(context.Context) error {
		if n := store.CleanupExpired(); n > 0 {
			logging.Debug().Int("removed", n).Msg("expired cache entries removed")
		}
		stats := store.Stats()
		metrics.RecordCacheStats(store.Name(), stats.Hits, stats.Misses, stats.Entries)
		return nil
	})
}
