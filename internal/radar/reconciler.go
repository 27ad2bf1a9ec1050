// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/metrics"
)

// DefaultPollInterval is the manifest refresh interval.
const DefaultPollInterval = 5 * time.Minute

// fetchTimeout bounds one manifest fetch inside the poll loop.
const fetchTimeout = 30 * time.Second

// ManifestSource fetches the current frame manifest.
type ManifestSource interface {
	FetchManifest(ctx context.Context) (Manifest, error)
}

// Reconciler periodically re-fetches the manifest and offers it to the
// Animator. Fetch failures are logged and the loop keeps going.
type Reconciler struct {
	view     string
	source   ManifestSource
	animator *Animator
	interval time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewReconciler creates a stopped reconciler. interval <= 0 selects
// DefaultPollInterval.
func NewReconciler(view string, source ManifestSource, animator *Animator, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Reconciler{
		view:     view,
		source:   source,
		animator: animator,
		interval: interval,
	}
}

// Start begins the poll loop. The first poll happens one interval from now.
func (r *Reconciler) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.stopChan = make(chan struct{})
	stop := r.stopChan
	r.mu.Unlock()

	logging.Info().Str("view", r.view).Dur("interval", r.interval).Msg("Starting radar reconciler")

	r.wg.Add(1)
	go r.pollLoop(ctx, stop)
	return nil
}

// Stop ends the poll loop and waits for an in-flight poll to finish.
func (r *Reconciler) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	close(r.stopChan)
	r.mu.Unlock()

	r.wg.Wait()
	logging.Info().Str("view", r.view).Msg("Radar reconciler stopped")
	return nil
}

// isRunning reports whether the poll loop is active.
func (r *Reconciler) isRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Reconciler) pollLoop(ctx context.Context, stop <-chan struct{}) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			r.ReconcileOnce(ctx) //nolint:errcheck // logged inside
		}
	}
}

// ReconcileOnce fetches the manifest and offers it to the animator.
func (r *Reconciler) ReconcileOnce(ctx context.Context) (Outcome, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	m, err := r.source.FetchManifest(fetchCtx)
	if err != nil {
		logging.Warn().Err(err).Str("view", r.view).Msg("Radar manifest refresh failed, keeping current frames")
		metrics.RecordReconcile(r.view, string(OutcomeError))
		return OutcomeError, err
	}

	outcome := r.animator.Offer(m)
	metrics.RecordReconcile(r.view, string(outcome))
	if outcome != OutcomeUnchanged {
		logging.Debug().Str("view", r.view).Str("outcome", string(outcome)).Int("frames", len(m.Frames)).Msg("Radar manifest reconciled")
	}
	return outcome, nil
}
