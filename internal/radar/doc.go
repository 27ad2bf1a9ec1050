// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

// Package radar implements the radar frame engine: frame manifests, the
// layer store, the playback animator and the update reconciler.
//
// # Components
//
//   - Store: ordered frames plus lazily created layers, keyed by index
//   - Animator: drift-corrected playback with play, pause, seek, step and
//     speed controls
//   - Reconciler: polls the manifest source and offers fresh manifests to
//     the Animator
//   - View: initial load, session-relative labels and teardown
//
// # Reconciliation
//
// The Reconciler never touches the Store. It calls Animator.Offer, which
// decides under the animator lock: identical frames are ignored, a playing
// animator applies the new frames at once and keeps the nearest timestamp
// on screen, and a paused one stages them until the next Play.
//
// # Timing
//
// Ticks come from a Scheduler, one callback per display frame. Each tick
// advances at most one frame and carries the sub-interval remainder
// forward, so frames advance once per speed interval on average no matter
// how often callbacks fire.
//
// Layers are an external concern. The websocket package renders them in
// browsers; the tiles package prefetches tiles for a headless view.
package radar
