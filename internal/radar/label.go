// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"math"
	"strconv"
	"time"
)

// forecastLead is how far ahead of now a frame must be to count as forecast.
const forecastLead = 60 * time.Second

// Label is the display text for one frame.
type Label struct {
	// Clock is the 24-hour HH:MM frame time.
	Clock string `json:"clock"`

	// Relative is "Session start", "Nm before", "Nm after", "Forecast" or "".
	Relative string `json:"relative"`
}

// FrameLabel describes frameTime relative to the session start, or relative
// to now when session is zero. Times are rendered in loc (UTC when nil).
func FrameLabel(frameTime, session, now time.Time, loc *time.Location) Label {
	if loc == nil {
		loc = time.UTC
	}
	l := Label{Clock: frameTime.In(loc).Format("15:04")}

	if session.IsZero() {
		if frameTime.Sub(now) > forecastLead {
			l.Relative = "Forecast"
		}
		return l
	}

	diff := frameTime.Sub(session).Minutes()
	switch {
	case math.Abs(diff) < 1:
		l.Relative = "Session start"
	case diff < 0:
		l.Relative = strconv.Itoa(int(math.Abs(roundHalfUp(diff)))) + "m before"
	default:
		l.Relative = strconv.Itoa(int(roundHalfUp(diff))) + "m after"
	}
	return l
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
