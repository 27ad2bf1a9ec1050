// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package cache

import (
	"context"
	"sync"
	"time"
)

// lruNode is a node in the recency list.
type lruNode struct {
	key   string
	entry *Entry
	prev  *lruNode
	next  *lruNode
}

// MemoryStore is a thread-safe LRU cache with per-entry TTL.
//
// Key features:
//   - O(1) Get, Put and eviction (hashmap + doubly-linked list)
//   - Lazy expiration on Get, bulk expiration via CleanupExpired
//   - Capacity-bounded: the least recently used entry is evicted first
type MemoryStore struct {
	mu sync.Mutex

	capacity int
	items    map[string]*lruNode

	// head.next is the most recently used, tail.prev the least.
	head *lruNode
	tail *lruNode

	now func() time.Time

	hits   int64
	misses int64
}

// NewMemoryStore creates an LRU store holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1024
	}

	s := &MemoryStore{
		capacity: capacity,
		items:    make(map[string]*lruNode, capacity),
		head:     &lruNode{},
		tail:     &lruNode{},
		now:      time.Now,
	}
	s.head.next = s.tail
	s.tail.prev = s.head
	return s
}

// Name implements Store.
func (s *MemoryStore) Name() string { return "memory" }

// Get implements Store. Entries are shared; callers must not mutate them.
func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.items[key]
	if !ok {
		s.misses++
		return nil, ErrCacheMiss
	}
	if !node.entry.Fresh(s.now()) {
		s.remove(node)
		s.misses++
		return nil, ErrCacheMiss
	}

	s.moveToFront(node)
	s.hits++
	return node.entry, nil
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, key string, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if node, ok := s.items[key]; ok {
		node.entry = entry
		s.moveToFront(node)
		return nil
	}

	node := &lruNode{key: key, entry: entry}
	s.addToFront(node)
	s.items[key] = node

	for len(s.items) > s.capacity {
		s.evictOldest()
	}
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*lruNode, s.capacity)
	s.head.next = s.tail
	s.tail.prev = s.head
	return nil
}

// Len returns the number of entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// CleanupExpired removes all expired entries and returns how many were removed.
func (s *MemoryStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for node := s.tail.prev; node != s.head; {
		prev := node.prev
		if !node.entry.Fresh(now) {
			s.remove(node)
			removed++
		}
		node = prev
	}
	return removed
}

// Stats returns hit/miss counters and the current size.
func (s *MemoryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Hits: s.hits, Misses: s.misses, Entries: len(s.items)}
}

// Internal methods (must be called with lock held)

func (s *MemoryStore) addToFront(node *lruNode) {
	node.prev = s.head
	node.next = s.head.next
	s.head.next.prev = node
	s.head.next = node
}

func (s *MemoryStore) moveToFront(node *lruNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
	s.addToFront(node)
}

func (s *MemoryStore) remove(node *lruNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
	delete(s.items, node.key)
}

func (s *MemoryStore) evictOldest() {
	oldest := s.tail.prev
	if oldest == s.head {
		return
	}
	s.remove(oldest)
}

var _ Store = (*MemoryStore)(nil)
