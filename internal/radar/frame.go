// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"strconv"
	"strings"
	"time"
)

// FrameDescriptor identifies one radar image time-slice. Values are
// immutable once constructed; pass them by value.
type FrameDescriptor struct {
	// Timestamp is the frame time in unix seconds.
	Timestamp int64 `json:"time"`

	// PathSegment is the upstream path of the frame, e.g. "/v2/radar/1700000000".
	PathSegment string `json:"path"`

	// TileURLTemplate contains {z}, {x} and {y} placeholders.
	TileURLTemplate string `json:"url"`
}

// Time returns the frame timestamp as a time.Time.
func (f FrameDescriptor) Time() time.Time {
	return time.Unix(f.Timestamp, 0)
}

// TileURL fills the template for one slippy-map tile.
func (f FrameDescriptor) TileURL(z, x, y int) string {
	return strings.NewReplacer(
		"{z}", strconv.Itoa(z),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	).Replace(f.TileURLTemplate)
}

// SameFrames reports whether two sequences describe the same frames:
// equal length and pairwise equal (timestamp, path). Templates are ignored.
func SameFrames(a, b []FrameDescriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Timestamp != b[i].Timestamp || a[i].PathSegment != b[i].PathSegment {
			return false
		}
	}
	return true
}

// nearestIndex returns the index whose timestamp is closest to ts.
// Ties go to the lower index. Returns -1 for an empty sequence.
func nearestIndex(frames []FrameDescriptor, ts int64) int {
	best := -1
	var bestDiff int64
	for i, f := range frames {
		diff := f.Timestamp - ts
		if diff < 0 {
			diff = -diff
		}
		if best < 0 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}
