// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package proxy

import (
	"errors"
	"fmt"
)

// Sentinel validation failures.
var (
	ErrInvalidPath        = errors.New("invalid API path")
	ErrInvalidTrackID     = errors.New("invalid track ID")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// ValidationError is malformed client input. It maps to 400 and never
// reaches upstream.
type ValidationError struct {
	// Message is the generic text sent to the client.
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// UpstreamStatusError reports a 5xx upstream answer. It counts as a failure
// for the circuit breaker; the response itself is still passed back so the
// status can be forwarded.
type UpstreamStatusError struct {
	Resource string
	Status   int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s upstream returned status %d", e.Resource, e.Status)
}
