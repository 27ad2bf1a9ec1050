// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"errors"
	"testing"
)

const sampleManifest = `{
  "version": "2.0",
  "generated": 1700001000,
  "host": "https://tilecache.rainviewer.com",
  "radar": {
    "past": [
      {"time": 1700000000, "path": "/v2/radar/1700000000"},
      {"time": 1700000600, "path": "/v2/radar/1700000600"},
      {"time": 1700001200, "path": "/v2/radar/1700001200"}
    ],
    "nowcast": [
      {"time": 1700001800, "path": "/v2/radar/nowcast_1"},
      {"time": 1700002400, "path": "/v2/radar/nowcast_2"}
    ]
  },
  "satellite": {"infrared": []}
}`

func TestParseManifest(t *testing.T) {
	t.Parallel()

	m, err := ParseManifest([]byte(sampleManifest), 0)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if len(m.Frames) != 5 {
		t.Fatalf("frames = %d, want 5", len(m.Frames))
	}
	if m.ForecastBoundary != 3 {
		t.Errorf("ForecastBoundary = %d, want 3", m.ForecastBoundary)
	}
	want := "https://tilecache.rainviewer.com/v2/radar/1700000000/256/{z}/{x}/{y}/2/1_1.png"
	if got := m.Frames[0].TileURLTemplate; got != want {
		t.Errorf("template = %q, want %q", got, want)
	}
	if got := m.Frames[3].PathSegment; got != "/v2/radar/nowcast_1" {
		t.Errorf("first forecast path = %q", got)
	}
	if got := m.Frames[0].TileURL(6, 31, 20); got != "https://tilecache.rainviewer.com/v2/radar/1700000000/256/6/31/20/2/1_1.png" {
		t.Errorf("TileURL = %q", got)
	}
}

func TestParseManifest_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		frames   int
		boundary int
		wantErr  error
	}{
		{"no nowcast", `{"host":"h","radar":{"past":[{"time":1,"path":"/a"}]}}`, 1, 1, nil},
		{"only nowcast", `{"host":"h","radar":{"nowcast":[{"time":1,"path":"/a"}]}}`, 1, 0, nil},
		{"drops incomplete", `{"host":"h","radar":{"past":[{"time":1},{"path":"/b"},{"time":2,"path":"/c"}]}}`, 1, 1, nil},
		{"sorts past", `{"host":"h","radar":{"past":[{"time":9,"path":"/b"},{"time":2,"path":"/a"}]}}`, 2, 2, nil},
		{"empty lists", `{"host":"h","radar":{"past":[],"nowcast":[]}}`, 0, 0, ErrEmptyManifest},
		{"no radar", `{"host":"h"}`, 0, 0, ErrEmptyManifest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := ParseManifest([]byte(tt.body), 256)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(m.Frames) != tt.frames || m.ForecastBoundary != tt.boundary {
				t.Errorf("frames = %d boundary = %d, want %d/%d", len(m.Frames), m.ForecastBoundary, tt.frames, tt.boundary)
			}
		})
	}

	if m, _ := ParseManifest([]byte(`{"host":"h","radar":{"past":[{"time":9,"path":"/b"},{"time":2,"path":"/a"}]}}`), 256); m.Frames[0].Timestamp != 2 {
		t.Error("past frames should be chronological")
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`not json`, `{"radar":{"past":[{"time":1,"path":"/a"}]}}`} {
		if _, err := ParseManifest([]byte(body), 256); err == nil {
			t.Errorf("ParseManifest(%q) expected error", body)
		}
	}
}

func TestSameFrames(t *testing.T) {
	t.Parallel()

	a := makeFrames(10, 20, 30)
	b := makeFrames(10, 20, 30)
	for i := range b {
		b[i].TileURLTemplate = "https://other.example/{z}/{x}/{y}.png"
	}

	if !SameFrames(a, b) {
		t.Error("same (timestamp, path) pairs should compare equal")
	}
	if SameFrames(a, makeFrames(10, 20)) {
		t.Error("different lengths compared equal")
	}
	c := makeFrames(10, 20, 30)
	c[1].PathSegment = "/changed"
	if SameFrames(a, c) {
		t.Error("different path compared equal")
	}
	if !SameFrames(nil, []FrameDescriptor{}) {
		t.Error("two empty sequences should compare equal")
	}
}

func TestNearestIndex(t *testing.T) {
	t.Parallel()

	frames := makeFrames(100, 200, 300, 400)

	tests := []struct {
		ts   int64
		want int
	}{
		{100, 0},
		{260, 2},
		{250, 1}, // tie between 200 and 300 goes to the lower index
		{50, 0},
		{1000, 3},
	}
	for _, tt := range tests {
		if got := nearestIndex(frames, tt.ts); got != tt.want {
			t.Errorf("nearestIndex(%d) = %d, want %d", tt.ts, got, tt.want)
		}
	}
	if got := nearestIndex(nil, 5); got != -1 {
		t.Errorf("nearestIndex(nil) = %d, want -1", got)
	}
}
