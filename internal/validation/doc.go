// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built lazily and shared. It carries three
// custom rules used by the proxy request types:
//
//	apipath  schedule path segments: [a-zA-Z0-9/._-], no "..", no "//",
//	         no leading "/", at most 255 bytes
//	trackid  circuit id: ^[a-z0-9-]+$, at most 50 bytes
//	coord    coordinate: ^-?\d+(\.\d+)?$
//
// Example:
//
//	type trackRequest struct {
//	    ID string `validate:"required,trackid"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    // 400
//	}
package validation
