// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/metrics"
)

// ViewConfig configures a radar view.
type ViewConfig struct {
	Name            string
	SpeedMs         int
	Speeds          []int
	Opacity         float64
	TileSize        int
	PollInterval    time.Duration
	TileLoadTimeout time.Duration
}

// ViewOption customizes a View.
type ViewOption func(*viewOptions)

type viewOptions struct {
	clock Clock
	sched Scheduler
	loc   *time.Location
}

// WithClock replaces the system clock.
func WithClock(c Clock) ViewOption {
	return func(o *viewOptions) { o.clock = c }
}

// WithScheduler replaces the frame scheduler.
func WithScheduler(s Scheduler) ViewOption {
	return func(o *viewOptions) { o.sched = s }
}

// WithLocation sets the time zone used for frame labels.
func WithLocation(loc *time.Location) ViewOption {
	return func(o *viewOptions) { o.loc = loc }
}

// View is one live radar view: a Store, its Animator and the Reconciler
// feeding them, with the lifecycle tying them together.
type View struct {
	name        string
	source      ManifestSource
	animator    *Animator
	reconciler  *Reconciler
	clock       Clock
	loc         *time.Location
	loadTimeout time.Duration

	mu          sync.RWMutex
	sessionTime time.Time
}

// NewView wires a view over source, rendering through factory.
func NewView(cfg ViewConfig, source ManifestSource, factory LayerFactory, opts ...ViewOption) *View {
	o := viewOptions{clock: SystemClock{}, loc: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sched == nil {
		o.sched = NewFrameScheduler(DefaultFrameInterval)
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}

	store := NewStore(factory, cfg.Opacity, cfg.TileSize)
	animator := NewAnimator(cfg.Name, store, o.clock, o.sched, cfg.Speeds, cfg.SpeedMs)

	return &View{
		name:        cfg.Name,
		source:      source,
		animator:    animator,
		reconciler:  NewReconciler(cfg.Name, source, animator, cfg.PollInterval),
		clock:       o.clock,
		loc:         o.loc,
		loadTimeout: cfg.TileLoadTimeout,
	}
}

// Name returns the view name.
func (v *View) Name() string { return v.name }

// Animator returns the view's animator for playback controls.
func (v *View) Animator() *Animator { return v.animator }

// Load fetches the manifest, installs it, waits for the current layer to
// load (bounded) and starts playback.
func (v *View) Load(ctx context.Context) error {
	m, err := v.source.FetchManifest(ctx)
	if err != nil {
		return fmt.Errorf("initial radar load: %w", err)
	}

	v.animator.Load(m)

	if !WaitForLoad(ctx, v.animator.CurrentLayer(), v.loadTimeout) {
		metrics.RadarTileLoadTimeouts.WithLabelValues(v.name).Inc()
		logging.Debug().Str("view", v.name).Msg("Radar tiles did not signal load in time, starting anyway")
	}

	v.animator.ShowCurrent()
	v.animator.Play()

	logging.Info().Str("view", v.name).Int("frames", len(m.Frames)).
		Int("forecast_boundary", m.ForecastBoundary).Msg("Radar view loaded")
	return nil
}

// Start loads the view and starts the reconciler. A failed initial load is
// logged; the reconciler fills the view once the source recovers.
func (v *View) Start(ctx context.Context) error {
	if err := v.Load(ctx); err != nil {
		logging.Warn().Err(err).Str("view", v.name).Msg("Radar view starting empty")
	}
	return v.reconciler.Start(ctx)
}

// Stop stops the reconciler and tears down every layer.
func (v *View) Stop() error {
	v.Destroy()
	return nil
}

// Destroy pauses playback, stops the reconciler and clears all layers.
func (v *View) Destroy() {
	v.animator.Pause()
	if err := v.reconciler.Stop(); err != nil {
		logging.Warn().Err(err).Str("view", v.name).Msg("Failed to stop radar reconciler")
	}
	v.animator.Destroy()
}

// SetSessionTime sets the reference used by Label. A zero time clears it.
func (v *View) SetSessionTime(t time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sessionTime = t
}

// Label describes frame relative to the session time, or to now.
func (v *View) Label(frame FrameDescriptor) Label {
	v.mu.RLock()
	session := v.sessionTime
	v.mu.RUnlock()
	return FrameLabel(frame.Time(), session, v.clock.Now(), v.loc)
}
