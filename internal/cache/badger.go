// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/circuitweather/internal/logging"
)

// responseKeyPrefix namespaces cached responses inside the Badger keyspace.
const responseKeyPrefix = "resp:"

// gcDiscardRatio is the value-log rewrite threshold passed to RunValueLogGC.
const gcDiscardRatio = 0.5

// BadgerStore persists responses in BadgerDB so the cache survives restarts.
// Expiry is delegated to Badger's per-entry TTL.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a Badger database at path.
// An empty path opens an in-memory database.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = badgerLogger{l: logging.WithComponent("badger")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an already opened database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Name implements Store.
func (s *BadgerStore) Name() string { return "badger" }

// Get implements Store.
func (s *BadgerStore) Get(_ context.Context, key string) (*Entry, error) {
	var entry Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(responseKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrCacheMiss
		}
		if err != nil {
			return fmt.Errorf("get response: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return nil, err
	}

	// Badger TTL granularity is one second; enforce the exact expiry here.
	if !entry.Fresh(time.Now()) {
		return nil, ErrCacheMiss
	}
	return &entry, nil
}

// Put implements Store.
func (s *BadgerStore) Put(_ context.Context, key string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(responseKeyPrefix+key), data).WithTTL(entry.TTL)
		if err := txn.SetEntry(e); err != nil {
			return fmt.Errorf("set response: %w", err)
		}
		return nil
	})
}

// RunGC reclaims value-log space. It loops until Badger reports nothing left
// to rewrite.
func (s *BadgerStore) RunGC() error {
	if s.db.Opts().InMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("value log gc: %w", err)
		}
	}
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes Badger's printf-style logging into zerolog.
type badgerLogger struct {
	l zerolog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Trace().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

var _ Store = (*BadgerStore)(nil)
