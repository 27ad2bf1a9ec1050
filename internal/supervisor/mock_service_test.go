// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// mockService is a suture.Service that fails a configurable number of
// times before running until canceled.
type mockService struct {
	name       string
	failures   int32
	startCount atomic.Int32
	stopCount  atomic.Int32
}

func newMockService(name string, failures int32) *mockService {
	return &mockService{name: name, failures: failures}
}

func (m *mockService) Serve(ctx context.Context) error {
	n := m.startCount.Add(1)
	defer m.stopCount.Add(1)

	if n <= m.failures {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string {
	return m.name
}
