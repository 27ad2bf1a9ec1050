// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"sync"
	"time"

	"github.com/tomtom215/circuitweather/internal/metrics"
)

// Default playback speeds in ms per frame: 0.5x, 1x, 2x.
var DefaultSpeeds = []int{2000, 1000, 500}

// DefaultSpeedMs is the 1x preset.
const DefaultSpeedMs = 1000

// Causes of a visible frame change.
const (
	CauseTick      = "tick"
	CauseSeek      = "seek"
	CauseReconcile = "reconcile"
	CauseLoad      = "load"
	CauseResume    = "resume"
)

// Outcome is the result of offering a fresh manifest to the animator.
type Outcome string

// Reconcile outcomes.
const (
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeApplied   Outcome = "applied"
	OutcomeStaged    Outcome = "staged"
	OutcomeError     Outcome = "error"
)

// AnimationState is a snapshot of playback state.
type AnimationState struct {
	CurrentIndex int       `json:"current_index"`
	Playing      bool      `json:"playing"`
	SpeedMs      int       `json:"speed_ms"`
	LastTick     time.Time `json:"-"`
	FrameCount   int       `json:"frame_count"`
	Pending      bool      `json:"pending"`
}

// FrameEvent describes a visible frame change.
type FrameEvent struct {
	View             string          `json:"view"`
	Cause            string          `json:"cause"`
	Index            int             `json:"index"`
	FrameCount       int             `json:"frame_count"`
	ForecastBoundary int             `json:"forecast_boundary"`
	Frame            FrameDescriptor `json:"frame"`
	Playing          bool            `json:"playing"`
	SpeedMs          int             `json:"speed_ms"`
}

// Animator drives playback over a Store with a drift-corrected loop.
//
// All state, including the Store, is guarded by mu. Observers run after mu
// is released, in the order events were produced.
type Animator struct {
	mu sync.Mutex

	view   string
	store  *Store
	clock  Clock
	sched  Scheduler
	speeds []int

	state   AnimationState
	pending *Manifest

	// gen invalidates ticks scheduled before the last pause.
	gen    uint64
	cancel func()

	observers []func(FrameEvent)
	events    []FrameEvent
}

// NewAnimator creates a paused animator over store.
func NewAnimator(view string, store *Store, clock Clock, sched Scheduler, speeds []int, speedMs int) *Animator {
	if len(speeds) == 0 {
		speeds = DefaultSpeeds
	}
	if speedMs <= 0 {
		speedMs = DefaultSpeedMs
	}
	return &Animator{
		view:   view,
		store:  store,
		clock:  clock,
		sched:  sched,
		speeds: append([]int(nil), speeds...),
		state:  AnimationState{CurrentIndex: -1, SpeedMs: speedMs},
	}
}

// OnFrame registers an observer for visible frame changes. Observers may
// call back into the Animator.
func (a *Animator) OnFrame(fn func(FrameEvent)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, fn)
}

// Load installs the initial manifest without showing it. The current index
// becomes the most recent frame. Any staged manifest is dropped.
func (a *Animator) Load(m Manifest) {
	a.mu.Lock()
	defer a.unlock()

	a.pending = nil
	a.state.CurrentIndex = a.store.Replace(m.Frames, m.ForecastBoundary)
	a.updateGauges()
}

// ShowCurrent makes the current frame visible.
func (a *Animator) ShowCurrent() {
	a.mu.Lock()
	defer a.unlock()

	if a.store.Len() == 0 {
		return
	}
	a.store.Show(a.state.CurrentIndex)
	a.emit(CauseLoad)
}

// CurrentLayer returns the layer of the current frame, creating it if
// needed. It returns nil when there are no frames.
func (a *Animator) CurrentLayer() Layer {
	a.mu.Lock()
	defer a.unlock()
	return a.store.GetOrCreateLayer(a.state.CurrentIndex)
}

// Play applies any staged manifest and starts the tick loop.
func (a *Animator) Play() {
	a.mu.Lock()
	defer a.unlock()
	a.playLocked()
}

func (a *Animator) playLocked() {
	if a.pending != nil {
		m := *a.pending
		a.pending = nil
		a.applyLocked(m, CauseResume)
	}
	if a.store.Len() == 0 || a.state.Playing {
		return
	}

	a.state.Playing = true
	a.state.LastTick = a.clock.Now()
	a.scheduleLocked()
}

// Pause stops the tick loop. Idempotent.
func (a *Animator) Pause() {
	a.mu.Lock()
	defer a.unlock()
	a.pauseLocked()
}

func (a *Animator) pauseLocked() {
	a.state.Playing = false
	a.gen++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// Toggle plays when paused and pauses when playing.
func (a *Animator) Toggle() {
	a.mu.Lock()
	defer a.unlock()
	if a.state.Playing {
		a.pauseLocked()
		return
	}
	a.playLocked()
}

// SetSpeed changes the frame interval. A playing loop is restarted so the
// new cadence starts from a fresh tick.
func (a *Animator) SetSpeed(speedMs int) {
	a.mu.Lock()
	defer a.unlock()
	a.setSpeedLocked(speedMs)
}

func (a *Animator) setSpeedLocked(speedMs int) {
	if speedMs <= 0 {
		return
	}
	a.state.SpeedMs = speedMs
	if a.state.Playing {
		a.pauseLocked()
		a.playLocked()
	}
}

// CycleSpeed moves to the next speed preset, wrapping, and returns it.
// A speed that is not a preset cycles to the first preset.
func (a *Animator) CycleSpeed() int {
	a.mu.Lock()
	defer a.unlock()

	next := 0
	for i, s := range a.speeds {
		if s == a.state.SpeedMs {
			next = (i + 1) % len(a.speeds)
			break
		}
	}
	a.setSpeedLocked(a.speeds[next])
	return a.state.SpeedMs
}

// Seek shows index and pauses. Out-of-range indexes are ignored.
func (a *Animator) Seek(index int) {
	a.mu.Lock()
	defer a.unlock()
	a.seekLocked(index)
}

func (a *Animator) seekLocked(index int) {
	if index < 0 || index >= a.store.Len() {
		return
	}
	prev := a.store.Visible()
	a.state.CurrentIndex = index
	a.store.Show(index)
	a.pauseLocked()
	if a.store.Visible() != prev {
		a.emit(CauseSeek)
	}
}

// Step moves delta frames from the current one, wrapping, and pauses.
func (a *Animator) Step(delta int) {
	a.mu.Lock()
	defer a.unlock()

	n := a.store.Len()
	if n == 0 {
		return
	}
	a.seekLocked(((a.state.CurrentIndex+delta)%n + n) % n)
}

// Offer hands a freshly fetched manifest to the animator. Playback state is
// read at this moment, not when the fetch was issued.
//
// An identical sequence changes nothing and drops any staged manifest. A
// different one is applied immediately while playing or when the store is
// empty, and staged for the next Play otherwise.
func (a *Animator) Offer(m Manifest) Outcome {
	a.mu.Lock()
	defer a.unlock()

	if a.store.Equal(m.Frames) {
		a.pending = nil
		return OutcomeUnchanged
	}
	if a.state.Playing || a.store.Len() == 0 {
		a.applyLocked(m, CauseReconcile)
		return OutcomeApplied
	}
	staged := m
	a.pending = &staged
	return OutcomeStaged
}

// applyLocked swaps m into the store and keeps the playback position on the
// frame nearest in time to the one visible before.
func (a *Animator) applyLocked(m Manifest, cause string) {
	prev, hadPrev := a.store.Frame(a.state.CurrentIndex)

	index := a.store.Replace(m.Frames, m.ForecastBoundary)
	if hadPrev && index >= 0 {
		index = nearestIndex(m.Frames, prev.Timestamp)
	}
	a.state.CurrentIndex = index
	a.store.Show(index)

	if index >= 0 {
		a.emit(cause)
	}
	if index < 0 && a.state.Playing {
		a.pauseLocked()
	}
	a.updateGauges()
}

func (a *Animator) scheduleLocked() {
	gen := a.gen
	a.cancel = a.sched.Schedule(func() { a.tick(gen) })
}

// tick advances at most one frame. The sub-interval remainder is carried
// into lastTick so the long-run rate matches the configured speed.
func (a *Animator) tick(gen uint64) {
	a.mu.Lock()
	defer a.unlock()

	if !a.state.Playing || gen != a.gen {
		return
	}

	if n := a.store.Len(); n > 0 {
		now := a.clock.Now()
		elapsed := now.Sub(a.state.LastTick)
		speed := time.Duration(a.state.SpeedMs) * time.Millisecond

		if elapsed >= speed {
			prev := a.store.Visible()
			a.state.CurrentIndex = (a.state.CurrentIndex + 1) % n
			a.store.Show(a.state.CurrentIndex)
			a.state.LastTick = now.Add(-(elapsed % speed))
			if a.store.Visible() != prev {
				a.emit(CauseTick)
			}
		}
	}

	a.scheduleLocked()
}

// Destroy pauses, drops any staged manifest and clears every layer.
func (a *Animator) Destroy() {
	a.mu.Lock()
	defer a.unlock()

	a.pauseLocked()
	a.pending = nil
	a.store.Clear()
	a.updateGauges()
}

// State returns a snapshot of playback state.
func (a *Animator) State() AnimationState {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.state
	s.FrameCount = a.store.Len()
	s.Pending = a.pending != nil
	return s
}

// Frames returns the current frame sequence and forecast boundary.
func (a *Animator) Frames() ([]FrameDescriptor, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Frames(), a.store.ForecastBoundary()
}

// Speeds returns the speed presets.
func (a *Animator) Speeds() []int {
	return append([]int(nil), a.speeds...)
}

func (a *Animator) emit(cause string) {
	frame, _ := a.store.Frame(a.state.CurrentIndex)
	a.events = append(a.events, FrameEvent{
		View:             a.view,
		Cause:            cause,
		Index:            a.state.CurrentIndex,
		FrameCount:       a.store.Len(),
		ForecastBoundary: a.store.ForecastBoundary(),
		Frame:            frame,
		Playing:          a.state.Playing,
		SpeedMs:          a.state.SpeedMs,
	})
	metrics.RecordFrameAdvance(a.view, cause)
	metrics.RadarMaterializedLayers.WithLabelValues(a.view).Set(float64(a.store.LayerCount()))
}

func (a *Animator) updateGauges() {
	metrics.RadarFrameCount.WithLabelValues(a.view).Set(float64(a.store.Len()))
	metrics.RadarMaterializedLayers.WithLabelValues(a.view).Set(float64(a.store.LayerCount()))
}

// unlock releases mu and delivers queued events.
func (a *Animator) unlock() {
	events := a.events
	a.events = nil
	observers := a.observers
	a.mu.Unlock()

	for _, ev := range events {
		for _, fn := range observers {
			fn(ev)
		}
	}
}
