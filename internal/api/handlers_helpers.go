// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/circuitweather/internal/validation"
)

// maxRequestBody bounds JSON request bodies on service endpoints.
const maxRequestBody = 16 << 10

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// requireMethod answers 405 and reports false unless r uses one of methods.
func requireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	return false
}

// decodeJSONBody decodes a bounded JSON body into v.
func decodeJSONBody(r *http.Request, v interface{}) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxRequestBody {
		return fmt.Errorf("request body exceeds %d bytes", maxRequestBody)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// validateRequest validates a struct using go-playground/validator.
// It returns nil when validation passes.
func validateRequest(v interface{}) []FieldError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}

	errs := verr.Errors()
	out := make([]FieldError, len(errs))
	for i := range errs {
		out[i] = FieldError{
			Field:   errs[i].Field(),
			Tag:     errs[i].Tag(),
			Message: errs[i].Error(),
		}
	}
	return out
}
