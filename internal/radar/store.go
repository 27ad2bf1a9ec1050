// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

// Store owns the ordered frame sequence and the layers materialized for it.
//
// A layer for index i exists iff i has been the current, next-preloaded or
// explicitly requested frame since the last Replace or Clear. Layers live in
// a map keyed by index and are released in bulk.
//
// Store is not safe for concurrent use; an Animator serializes access.
type Store struct {
	factory  LayerFactory
	opacity  float64
	tileSize int

	frames           []FrameDescriptor
	forecastBoundary int
	layers           map[int]Layer

	// visible is the index shown at display opacity, or -1.
	visible int
}

// NewStore creates an empty store. opacity <= 0 selects
// DefaultDisplayOpacity.
func NewStore(factory LayerFactory, opacity float64, tileSize int) *Store {
	if opacity <= 0 {
		opacity = DefaultDisplayOpacity
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &Store{
		factory:  factory,
		opacity:  opacity,
		tileSize: tileSize,
		layers:   make(map[int]Layer),
		visible:  -1,
	}
}

// Replace discards every layer, installs frames and materializes only the
// most recent frame. It returns the new current index, or -1 when frames is
// empty.
func (s *Store) Replace(frames []FrameDescriptor, forecastBoundary int) int {
	s.Clear()

	s.frames = append([]FrameDescriptor(nil), frames...)
	if forecastBoundary < 0 || forecastBoundary > len(s.frames) {
		forecastBoundary = len(s.frames)
	}
	s.forecastBoundary = forecastBoundary

	current := len(s.frames) - 1
	if current >= 0 {
		s.GetOrCreateLayer(current)
	}
	return current
}

// GetOrCreateLayer returns the layer for index, creating and attaching it
// at near-zero opacity on first use. It returns nil when index is out of
// range.
func (s *Store) GetOrCreateLayer(index int) Layer {
	if index < 0 || index >= len(s.frames) {
		return nil
	}
	if l, ok := s.layers[index]; ok {
		return l
	}
	l := s.factory.NewLayer(index, s.frames[index], LayerOptions{
		TileSize:      s.tileSize,
		Opacity:       InitialOpacity,
		ZIndex:        baseZIndex + index,
		MaxNativeZoom: MaxNativeZoom,
		MaxZoom:       MaxZoom,
	})
	s.layers[index] = l
	return l
}

// Show makes index the visible frame and preloads the one after it.
// Showing the already visible index does nothing; so does an out-of-range
// index.
func (s *Store) Show(index int) {
	if index == s.visible || index < 0 || index >= len(s.frames) {
		return
	}

	if prev, ok := s.layers[s.visible]; ok {
		prev.SetOpacity(0)
	}
	s.GetOrCreateLayer(index).SetOpacity(s.opacity)
	s.visible = index

	s.GetOrCreateLayer((index + 1) % len(s.frames))
}

// Clear detaches and discards every layer. Frames are kept.
func (s *Store) Clear() {
	for i, l := range s.layers {
		l.Remove()
		delete(s.layers, i)
	}
	s.visible = -1
}

// Len returns the number of frames.
func (s *Store) Len() int {
	return len(s.frames)
}

// Frame returns the frame at index.
func (s *Store) Frame(index int) (FrameDescriptor, bool) {
	if index < 0 || index >= len(s.frames) {
		return FrameDescriptor{}, false
	}
	return s.frames[index], true
}

// Frames returns a copy of the frame sequence.
func (s *Store) Frames() []FrameDescriptor {
	return append([]FrameDescriptor(nil), s.frames...)
}

// ForecastBoundary returns the index of the first forecast frame.
func (s *Store) ForecastBoundary() int {
	return s.forecastBoundary
}

// Equal reports whether frames matches the stored sequence.
func (s *Store) Equal(frames []FrameDescriptor) bool {
	return SameFrames(s.frames, frames)
}

// Visible returns the visible index, or -1.
func (s *Store) Visible() int {
	return s.visible
}

// LayerCount returns the number of materialized layers.
func (s *Store) LayerCount() int {
	return len(s.layers)
}

// HasLayer reports whether a layer exists for index.
func (s *Store) HasLayer(index int) bool {
	_, ok := s.layers[index]
	return ok
}
