// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package services

import (
	"context"
	"fmt"
)

// StartStopManager is a component with a non-blocking Start and a Stop
// that waits for its goroutines, such as radar.View.
type StartStopManager interface {
	Start(ctx context.Context) error
	Stop() error
}

// StartStopService adapts a StartStopManager to suture's Serve pattern.
type StartStopService struct {
	manager StartStopManager
	name    string
}

// NewStartStopService wraps manager under name.
func NewStartStopService(name string, manager StartStopManager) *StartStopService {
	return &StartStopService{
		manager: manager,
		name:    name,
	}
}

// NewRadarViewService wraps the live radar view.
func NewRadarViewService(view StartStopManager) *StartStopService {
	return NewStartStopService("radar-view", view)
}

// Serve implements suture.Service.
func (s *StartStopService) Serve(ctx context.Context) error {
	if err := s.manager.Start(ctx); err != nil {
		return fmt.Errorf("%s start failed: %w", s.name, err)
	}

	<-ctx.Done()

	if err := s.manager.Stop(); err != nil {
		return fmt.Errorf("%s stop failed: %w", s.name, err)
	}
	return ctx.Err()
}

func (s *StartStopService) String() string {
	return s.name
}
