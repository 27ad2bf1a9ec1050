// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ErrEmptyManifest is returned when a manifest carries no usable frames.
var ErrEmptyManifest = errors.New("radar manifest has no frames")

// DefaultTileSize is the tile edge in pixels requested from the tile host.
const DefaultTileSize = 256

// manifestDTO mirrors the upstream weather-maps payload.
//
//	{"host": "...", "radar": {"past": [{time, path}], "nowcast": [{time, path}]}}
type manifestDTO struct {
	Host  string `json:"host"`
	Radar *struct {
		Past    []frameDTO `json:"past"`
		Nowcast []frameDTO `json:"nowcast"`
	} `json:"radar"`
}

type frameDTO struct {
	Time int64  `json:"time"`
	Path string `json:"path"`
}

// Manifest is a parsed frame manifest: past frames in chronological order,
// then forecast frames.
type Manifest struct {
	Host   string
	Frames []FrameDescriptor

	// ForecastBoundary is the index of the first forecast frame. It equals
	// len(Frames) when there are no forecast frames.
	ForecastBoundary int
}

// ParseManifest decodes an upstream manifest. Frames with no path or a
// non-positive time are dropped. tileSize <= 0 selects DefaultTileSize.
func ParseManifest(data []byte, tileSize int) (Manifest, error) {
	var dto manifestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return Manifest{}, fmt.Errorf("decode radar manifest: %w", err)
	}
	if dto.Host == "" {
		return Manifest{}, errors.New("radar manifest missing host")
	}
	if dto.Radar == nil {
		return Manifest{}, ErrEmptyManifest
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	host := strings.TrimSuffix(dto.Host, "/")
	past := toFrames(host, tileSize, dto.Radar.Past)
	forecast := toFrames(host, tileSize, dto.Radar.Nowcast)
	if len(past)+len(forecast) == 0 {
		return Manifest{}, ErrEmptyManifest
	}

	frames := make([]FrameDescriptor, 0, len(past)+len(forecast))
	frames = append(frames, past...)
	frames = append(frames, forecast...)

	return Manifest{
		Host:             host,
		Frames:           frames,
		ForecastBoundary: len(past),
	}, nil
}

func toFrames(host string, tileSize int, items []frameDTO) []FrameDescriptor {
	out := make([]FrameDescriptor, 0, len(items))
	for _, it := range items {
		if it.Path == "" || it.Time <= 0 {
			continue
		}
		out = append(out, FrameDescriptor{
			Timestamp:       it.Time,
			PathSegment:     it.Path,
			TileURLTemplate: tileTemplate(host, it.Path, tileSize),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// tileTemplate builds {host}{path}/{size}/{z}/{x}/{y}/2/1_1.png
// (color scheme 2, smoothed, snow shown).
func tileTemplate(host, path string, tileSize int) string {
	return host + path + "/" + strconv.Itoa(tileSize) + "/{z}/{x}/{y}/2/1_1.png"
}
