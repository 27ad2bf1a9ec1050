// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

// Layer option defaults.
const (
	// InitialOpacity is near zero so the renderer still loads tiles.
	InitialOpacity = 0.01

	// DefaultDisplayOpacity is applied to the visible frame.
	DefaultDisplayOpacity = 0.65

	baseZIndex = 100

	// MaxNativeZoom is the deepest zoom the tile host serves; deeper zooms
	// are upscaled by the renderer.
	MaxNativeZoom = 10
	MaxZoom       = 18
)

// LayerOptions are passed to a LayerFactory for every new layer.
type LayerOptions struct {
	TileSize      int     `json:"tile_size"`
	Opacity       float64 `json:"opacity"`
	ZIndex        int     `json:"z_index"`
	MaxNativeZoom int     `json:"max_native_zoom"`
	MaxZoom       int     `json:"max_zoom"`
}

// Layer is a renderable tile layer bound to exactly one frame.
//
// Implementations must not call back into the Animator from these methods.
type Layer interface {
	SetOpacity(opacity float64)

	// Remove detaches the layer and releases its resources.
	Remove()

	// Loaded is closed once the layer's tiles have loaded.
	Loaded() <-chan struct{}
}

// LayerFactory creates and attaches layers. Only a Store calls it.
type LayerFactory interface {
	NewLayer(index int, frame FrameDescriptor, opts LayerOptions) Layer
}

// LayerFactoryFunc adapts a function to LayerFactory.
type LayerFactoryFunc func(index int, frame FrameDescriptor, opts LayerOptions) Layer

// NewLayer implements LayerFactory.
func (f LayerFactoryFunc) NewLayer(index int, frame FrameDescriptor, opts LayerOptions) Layer {
	return f(index, frame, opts)
}
