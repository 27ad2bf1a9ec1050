// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

/*
Package cache provides the shared response cache behind the edge proxy.

Entries are keyed by the canonical upstream URL and carry the status, headers
and body of a successful upstream response together with the TTL of its
resource family. Nothing is invalidated explicitly; entries age out.

# Backends

  - memory: LRU with per-entry TTL, bounded by cache.max_entries. A janitor
    service calls CleanupExpired periodically.
  - badger: BadgerDB with native entry TTL, persistent across restarts. A GC
    service calls RunGC periodically.
  - disabled: NoopStore, every request is a miss.

# Concurrency

All backends are safe for concurrent use. Two requests that miss on the same
key at once will both fetch and both Put; the last write wins, which is fine
because upstream responses for one key are interchangeable within the TTL.
*/
package cache
