// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package cache

import "context"

// NoopStore never holds anything. Every request goes upstream.
type NoopStore struct{}

func (NoopStore) Name() string { return "disabled" }

func (NoopStore) Get(context.Context, string) (*Entry, error) { return nil, ErrCacheMiss }

func (NoopStore) Put(context.Context, string, *Entry) error { return nil }

func (NoopStore) Close() error { return nil }

var _ Store = NoopStore{}
