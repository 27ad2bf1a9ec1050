// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import "time"

// DefaultFrameInterval approximates a display refresh callback (~60Hz).
const DefaultFrameInterval = 16 * time.Millisecond

// Clock supplies the current time. time.Time carries a monotonic reading,
// so Sub on two values from the system clock is immune to wall-clock jumps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Scheduler runs fn once at the next frame callback. The returned function
// cancels it if it has not started.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}

// FrameScheduler fires callbacks after a fixed frame interval.
type FrameScheduler struct {
	Interval time.Duration
}

// NewFrameScheduler creates a scheduler; interval <= 0 selects
// DefaultFrameInterval.
func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameScheduler{Interval: interval}
}

// Schedule implements Scheduler.
func (s *FrameScheduler) Schedule(fn func()) func() {
	t := time.AfterFunc(s.Interval, fn)
	return func() { t.Stop() }
}
