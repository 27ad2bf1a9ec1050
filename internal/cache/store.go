// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package cache

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: miss")

// Entry is a stored upstream response. Entries are written once per miss and
// never invalidated explicitly; they expire StoredAt+TTL.
type Entry struct {
	Status   int           `json:"status"`
	Header   http.Header   `json:"header"`
	Body     []byte        `json:"body"`
	StoredAt time.Time     `json:"stored_at"`
	TTL      time.Duration `json:"ttl"`
}

// ExpiresAt returns the instant the entry stops being served.
func (e *Entry) ExpiresAt() time.Time {
	return e.StoredAt.Add(e.TTL)
}

// Fresh reports whether the entry may still be served at now.
func (e *Entry) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt())
}

// Store is the shared response cache substrate.
//
// Concurrent Put calls for the same key are allowed; the last write wins.
type Store interface {
	// Get returns a fresh entry or ErrCacheMiss.
	Get(ctx context.Context, key string) (*Entry, error)

	// Put stores the entry under key for entry.TTL.
	Put(ctx context.Context, key string, entry *Entry) error

	// Name identifies the backend in logs and metrics.
	Name() string

	Close() error
}

// Stats is a point-in-time snapshot of store counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}
