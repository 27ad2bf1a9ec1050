// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/circuitweather/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		cfg      config.CacheConfig
		wantName string
		wantErr  bool
	}{
		{config.CacheConfig{Type: "memory", MaxEntries: 10}, "memory", false},
		{config.CacheConfig{Type: "disabled"}, "disabled", false},
		{config.CacheConfig{Type: "badger", BadgerPath: ""}, "badger", false},
		{config.CacheConfig{Type: "redis"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Type, func(t *testing.T) {
			s, err := Open(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer s.Close()
			if s.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", s.Name(), tt.wantName)
			}
		})
	}
}

func TestNoopStore(t *testing.T) {
	t.Parallel()

	var s Store = NoopStore{}
	ctx := context.Background()
	_ = s.Put(ctx, "k", &Entry{Status: 200, StoredAt: time.Now(), TTL: time.Hour})
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("NoopStore.Get err = %v, want ErrCacheMiss", err)
	}
}
