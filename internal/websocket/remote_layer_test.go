// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package websocket

import (
	"sync"
	"testing"

	"github.com/tomtom215/circuitweather/internal/radar"
)

type recordingBroadcaster struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *recordingBroadcaster) BroadcastJSON(messageType string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Message{Type: messageType, Data: data})
}

func (r *recordingBroadcaster) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Type
	}
	return out
}

func testFrame(ts int64) radar.FrameDescriptor {
	return radar.FrameDescriptor{
		Timestamp:       ts,
		PathSegment:     "/v2/radar/x",
		TileURLTemplate: "https://tilecache.example/v2/radar/x/256/{z}/{x}/{y}/2/1_1.png",
	}
}

func TestRemoteLayerFactory_Lifecycle(t *testing.T) {
	t.Parallel()

	out := &recordingBroadcaster{}
	f := NewRemoteLayerFactory("live", out)

	l := f.NewLayer(3, testFrame(100), radar.LayerOptions{Opacity: radar.InitialOpacity, ZIndex: 103, TileSize: 256})
	remote := l.(*RemoteLayer)
	if remote.ID() == "" {
		t.Fatal("layer id should be assigned")
	}

	l.SetOpacity(0.65)
	snap := f.Snapshot()
	if len(snap) != 1 || snap[0].Opacity != 0.65 || snap[0].Index != 3 || snap[0].Options.ZIndex != 103 {
		t.Errorf("snapshot = %+v", snap)
	}

	l.Remove()
	l.Remove()
	l.SetOpacity(0)

	want := []string{MessageTypeLayerAdd, MessageTypeLayerOpacity, MessageTypeLayerRemove}
	got := out.types()
	if len(got) != len(want) {
		t.Fatalf("messages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
	if f.Len() != 0 {
		t.Error("removed layer still tracked")
	}
}

func TestRemoteLayerFactory_MarkLoaded(t *testing.T) {
	t.Parallel()

	f := NewRemoteLayerFactory("live", &recordingBroadcaster{})
	l := f.NewLayer(0, testFrame(1), radar.LayerOptions{}).(*RemoteLayer)

	select {
	case <-l.Loaded():
		t.Fatal("layer loaded before any ack")
	default:
	}

	if f.MarkLoaded("unknown") {
		t.Error("unknown layer id accepted")
	}
	if !f.MarkLoaded(l.ID()) || !f.MarkLoaded(l.ID()) {
		t.Error("repeated acks should be accepted")
	}

	select {
	case <-l.Loaded():
	default:
		t.Fatal("Loaded not closed after ack")
	}
}

func TestRemoteLayerFactory_SnapshotOrdered(t *testing.T) {
	t.Parallel()

	f := NewRemoteLayerFactory("live", &recordingBroadcaster{})
	for _, i := range []int{4, 0, 2} {
		f.NewLayer(i, testFrame(int64(i)), radar.LayerOptions{})
	}

	snap := f.Snapshot()
	for i := 1; i < len(snap); i++ {
		if snap[i-1].Index > snap[i].Index {
			t.Fatalf("snapshot not ordered: %+v", snap)
		}
	}
}
