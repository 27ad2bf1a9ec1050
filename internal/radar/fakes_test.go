// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"sync"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// manualScheduler queues callbacks until RunPending is called.
type manualScheduler struct {
	mu    sync.Mutex
	queue map[int]func()
	next  int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{queue: map[int]func(){}}
}

func (s *manualScheduler) Schedule(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.queue[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.queue, id)
	}
}

// RunPending fires every queued callback once. Callbacks scheduled while
// running wait for the next call.
func (s *manualScheduler) RunPending() int {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.queue))
	for id, fn := range s.queue {
		fns = append(fns, fn)
		delete(s.queue, id)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

type recordingLayer struct {
	mu        sync.Mutex
	index     int
	frame     FrameDescriptor
	opts      LayerOptions
	opacities []float64
	removed   bool
	loaded    chan struct{}
}

func (l *recordingLayer) SetOpacity(o float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opacities = append(l.opacities, o)
}

func (l *recordingLayer) Remove() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removed = true
}

func (l *recordingLayer) Loaded() <-chan struct{} { return l.loaded }

func (l *recordingLayer) opacityCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.opacities)
}

func (l *recordingLayer) lastOpacity() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.opacities) == 0 {
		return l.opts.Opacity
	}
	return l.opacities[len(l.opacities)-1]
}

type recordingFactory struct {
	mu        sync.Mutex
	created   []*recordingLayer
	loadedNow bool
}

func (f *recordingFactory) NewLayer(index int, frame FrameDescriptor, opts LayerOptions) Layer {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := &recordingLayer{index: index, frame: frame, opts: opts, loaded: make(chan struct{})}
	if f.loadedNow {
		close(l.loaded)
	}
	f.created = append(f.created, l)
	return l
}

func (f *recordingFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *recordingFactory) live() []*recordingLayer {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*recordingLayer
	for _, l := range f.created {
		l.mu.Lock()
		if !l.removed {
			out = append(out, l)
		}
		l.mu.Unlock()
	}
	return out
}

// makeFrames builds frames at the given unix times.
func makeFrames(times ...int64) []FrameDescriptor {
	out := make([]FrameDescriptor, len(times))
	for i, ts := range times {
		out[i] = FrameDescriptor{
			Timestamp:       ts,
			PathSegment:     "/v2/radar/" + time.Unix(ts, 0).UTC().Format("150405"),
			TileURLTemplate: "https://tilecache.example/v2/radar/x/256/{z}/{x}/{y}/2/1_1.png",
		}
	}
	return out
}

func manifestOf(frames []FrameDescriptor, boundary int) Manifest {
	return Manifest{Host: "https://tilecache.example", Frames: frames, ForecastBoundary: boundary}
}
