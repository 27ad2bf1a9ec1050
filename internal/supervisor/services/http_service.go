// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPServer matches the *http.Server lifecycle methods.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server as a supervised service.
//
//  1. ListenAndServe runs in a goroutine
//  2. Serve waits for context cancellation or a server error
//  3. On cancellation Shutdown drains connections within the timeout,
//     then the drain hook runs (pending proxy cache writes)
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	drain           func()
	name            string
}

// NewHTTPServerService wraps server. A non-positive timeout means 10s.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "http-server",
	}
}

// SetDrain registers fn to run after the server has shut down.
func (h *HTTPServerService) SetDrain(fn func()) {
	h.drain = fn
}

// Serve implements suture.Service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		// Closed without our cancellation; let the supervisor restart it.
		return errors.New("http server stopped unexpectedly")

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		err := h.server.Shutdown(shutdownCtx)
		<-errCh
		if h.drain != nil {
			h.drain()
		}
		if err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return ctx.Err()
	}
}

func (h *HTTPServerService) String() string {
	return h.name
}
