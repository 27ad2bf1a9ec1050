// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

/*
Package websocket streams radar playback to map clients.

The server owns the radar animation state. Map clients own the actual tile
layers. This package bridges the two: a RemoteLayerFactory turns every layer
the radar store creates, fades or removes into a broadcast message, and a
RadarBridge forwards frame changes and applies playback controls sent back
by clients.

Key Components:

  - Hub: client registry and ordered broadcast loop
  - Client: one connection with readPump and writePump goroutines
  - RemoteLayerFactory: radar.LayerFactory backed by connected clients
  - RadarBridge: snapshot on connect, frame broadcasts, control handling

Server to client messages:

  - snapshot: full state for a newly connected client (layers, state, speeds)
  - layer_add: create a tile layer (id, index, url template, options)
  - layer_opacity: change a layer's opacity
  - layer_remove: drop a layer
  - frame: the visible frame changed (index, cause, label)
  - pong, error

Client to server messages:

  - ping
  - layer_loaded: the client finished loading the layer's tiles
  - control: play, pause, toggle, seek, step, speed or cycle_speed

A layer's Loaded channel closes on the first layer_loaded acknowledgement
from any client, so the initial tile wait in radar.View ends as soon as one
map has rendered the frame.

Slow clients whose send buffer is full are disconnected rather than
blocking the broadcast loop.
*/
package websocket
