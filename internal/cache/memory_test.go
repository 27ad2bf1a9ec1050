// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newEntry(body string, ttl time.Duration, storedAt time.Time) *Entry {
	return &Entry{Status: 200, Body: []byte(body), StoredAt: storedAt, TTL: ttl}
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore(3)
	ctx := context.Background()

	if err := s.Put(ctx, "k", newEntry("v", time.Minute, time.Now())); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Body) != "v" {
		t.Errorf("Body = %q, want v", got.Body)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(missing) err = %v, want ErrCacheMiss", err)
	}

	stats := s.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Entries != 1 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestMemoryStore_Eviction(t *testing.T) {
	s := NewMemoryStore(3)
	ctx := context.Background()
	now := time.Now()

	for _, k := range []string{"a", "b", "c"} {
		_ = s.Put(ctx, k, newEntry(k, time.Minute, now))
	}

	// Touch 'a' so 'b' becomes least recently used.
	if _, err := s.Get(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	_ = s.Put(ctx, "d", newEntry("d", time.Minute, now))

	if _, err := s.Get(ctx, "b"); !errors.Is(err, ErrCacheMiss) {
		t.Error("expected 'b' to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, err := s.Get(ctx, k); err != nil {
			t.Errorf("expected %q present: %v", k, err)
		}
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()
	base := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	now := base
	s.now = func() time.Time { return now }

	_ = s.Put(ctx, "radar", newEntry("m", 60*time.Second, base))
	_ = s.Put(ctx, "track", newEntry("t", 86400*time.Second, base))

	now = base.Add(59 * time.Second)
	if _, err := s.Get(ctx, "radar"); err != nil {
		t.Errorf("radar should still be fresh at 59s: %v", err)
	}

	now = base.Add(60 * time.Second)
	if _, err := s.Get(ctx, "radar"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("radar should be expired at 60s, err = %v", err)
	}

	now = base.Add(2 * time.Hour)
	_ = s.Put(ctx, "schedule", newEntry("s", time.Hour, base))
	if removed := s.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (track only)", s.Len())
	}
}

func TestMemoryStore_ConcurrentSameKey(t *testing.T) {
	s := NewMemoryStore(100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Put(ctx, "same", newEntry(fmt.Sprint(i), time.Minute, time.Now()))
			_, _ = s.Get(ctx, "same")
		}(i)
	}
	wg.Wait()

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if _, err := s.Get(ctx, "same"); err != nil {
		t.Errorf("Get after concurrent puts: %v", err)
	}
}
