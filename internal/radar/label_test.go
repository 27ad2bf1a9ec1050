// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"testing"
	"time"
)

func TestFrameLabel(t *testing.T) {
	t.Parallel()

	session := time.Date(2026, 7, 5, 14, 0, 0, 0, time.UTC)
	now := time.Date(2026, 7, 5, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		frame    time.Time
		session  time.Time
		clock    string
		relative string
	}{
		{"at start", session.Add(30 * time.Second), session, "14:00", "Session start"},
		{"just before", session.Add(-59 * time.Second), session, "13:59", "Session start"},
		{"before", session.Add(-20 * time.Minute), session, "13:40", "20m before"},
		{"before rounds", session.Add(-90 * time.Second), session, "13:58", "1m before"},
		{"after", session.Add(45 * time.Minute), session, "14:45", "45m after"},
		{"after rounds up", session.Add(150 * time.Second), session, "14:02", "3m after"},
		{"forecast", now.Add(10 * time.Minute), time.Time{}, "13:10", "Forecast"},
		{"recent past", now.Add(-10 * time.Minute), time.Time{}, "12:50", ""},
		{"within lead", now.Add(60 * time.Second), time.Time{}, "13:01", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FrameLabel(tt.frame, tt.session, now, nil)
			if got.Clock != tt.clock || got.Relative != tt.relative {
				t.Errorf("FrameLabel = %+v, want {%s %s}", got, tt.clock, tt.relative)
			}
		})
	}
}

func TestFrameLabel_Location(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("CEST", 2*60*60)
	frame := time.Date(2026, 7, 5, 12, 5, 0, 0, time.UTC)
	if got := FrameLabel(frame, time.Time{}, frame, loc).Clock; got != "14:05" {
		t.Errorf("Clock = %q, want 14:05", got)
	}
}
