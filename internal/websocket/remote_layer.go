// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package websocket

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tomtom215/circuitweather/internal/radar"
)

// Broadcaster sends a message to every connected client.
type Broadcaster interface {
	BroadcastJSON(messageType string, data interface{})
}

// RemoteLayerFactory implements radar.LayerFactory with layers rendered by
// connected map clients. Layer lifecycle calls become broadcast messages,
// and a layer counts as loaded once any client acknowledges it.
type RemoteLayerFactory struct {
	view string
	out  Broadcaster

	mu     sync.Mutex
	layers map[string]*RemoteLayer
}

// NewRemoteLayerFactory creates a factory for one radar view.
func NewRemoteLayerFactory(view string, out Broadcaster) *RemoteLayerFactory {
	return &RemoteLayerFactory{
		view:   view,
		out:    out,
		layers: make(map[string]*RemoteLayer),
	}
}

// NewLayer implements radar.LayerFactory.
func (f *RemoteLayerFactory) NewLayer(index int, frame radar.FrameDescriptor, opts radar.LayerOptions) radar.Layer {
	l := &RemoteLayer{
		factory: f,
		add: LayerAddData{
			View:      f.view,
			LayerID:   uuid.NewString(),
			Index:     index,
			Timestamp: frame.Timestamp,
			URL:       frame.TileURLTemplate,
			Options:   opts,
			Opacity:   opts.Opacity,
		},
		loaded: make(chan struct{}),
	}

	f.mu.Lock()
	f.layers[l.add.LayerID] = l
	f.mu.Unlock()

	f.out.BroadcastJSON(MessageTypeLayerAdd, l.add)
	return l
}

// MarkLoaded records a client's load acknowledgement. Unknown or removed
// layers are ignored.
func (f *RemoteLayerFactory) MarkLoaded(layerID string) bool {
	f.mu.Lock()
	l, ok := f.layers[layerID]
	f.mu.Unlock()
	if !ok {
		return false
	}
	l.loadOnce.Do(func() { close(l.loaded) })
	return true
}

// Snapshot returns every live layer with its current opacity, in index order.
func (f *RemoteLayerFactory) Snapshot() []LayerAddData {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]LayerAddData, 0, len(f.layers))
	for _, l := range f.layers {
		l.mu.Lock()
		out = append(out, l.add)
		l.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Len returns the number of live layers.
func (f *RemoteLayerFactory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.layers)
}

func (f *RemoteLayerFactory) forget(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.layers, id)
}

// RemoteLayer is a layer rendered by browser clients.
type RemoteLayer struct {
	factory *RemoteLayerFactory

	mu      sync.Mutex
	add     LayerAddData
	removed bool

	loaded   chan struct{}
	loadOnce sync.Once
}

// ID returns the layer id shared with clients.
func (l *RemoteLayer) ID() string {
	return l.add.LayerID
}

// SetOpacity implements radar.Layer.
func (l *RemoteLayer) SetOpacity(opacity float64) {
	l.mu.Lock()
	if l.removed {
		l.mu.Unlock()
		return
	}
	l.add.Opacity = opacity
	l.mu.Unlock()

	l.factory.out.BroadcastJSON(MessageTypeLayerOpacity, LayerOpacityData{
		View:    l.factory.view,
		LayerID: l.add.LayerID,
		Opacity: opacity,
	})
}

// Remove implements radar.Layer.
func (l *RemoteLayer) Remove() {
	l.mu.Lock()
	if l.removed {
		l.mu.Unlock()
		return
	}
	l.removed = true
	l.mu.Unlock()

	l.factory.forget(l.add.LayerID)
	l.factory.out.BroadcastJSON(MessageTypeLayerRemove, LayerRemoveData{
		View:    l.factory.view,
		LayerID: l.add.LayerID,
	})
}

// Loaded implements radar.Layer.
func (l *RemoteLayer) Loaded() <-chan struct{} {
	return l.loaded
}
