// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

const (
	// MaxAPIPathLength bounds schedule path segments.
	MaxAPIPathLength = 255
	// MaxTrackIDLength bounds circuit identifiers.
	MaxTrackIDLength = 50
)

var (
	apiPathPattern = regexp.MustCompile(`^[a-zA-Z0-9/._-]+$`)
	trackIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	coordPattern   = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// ValidationError represents a single field validation error.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the struct field name that failed validation.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "100" for "max=100").
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the actual value that failed validation.
func (e *ValidationError) Value() interface{} {
	return e.value
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError represents a collection of validation errors.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the slice of validation errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error implements the error interface, returning a combined error message.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
// The validator is initialized once with custom validators and options.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		mustRegister(validate, "apipath", validateAPIPath)
		mustRegister(validate, "trackid", validateTrackID)
		mustRegister(validate, "coord", validateCoord)
	})

	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RequestValidationError if validation fails.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{
				{
					field:   "unknown",
					tag:     "unknown",
					message: err.Error(),
				},
			},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr),
		}
	}

	return &RequestValidationError{errors: fieldErrors}
}

// IsAPIPath reports whether s is an acceptable schedule path: characters from
// [a-zA-Z0-9/._-], no "..", no "//", no leading "/", at most 255 bytes.
func IsAPIPath(s string) bool {
	if s == "" || len(s) > MaxAPIPathLength {
		return false
	}
	if strings.HasPrefix(s, "/") || strings.Contains(s, "..") || strings.Contains(s, "//") {
		return false
	}
	return apiPathPattern.MatchString(s)
}

// IsTrackID reports whether s is a lowercase circuit slug of at most 50 bytes.
func IsTrackID(s string) bool {
	return len(s) <= MaxTrackIDLength && trackIDPattern.MatchString(s)
}

// IsCoord reports whether s is a plain decimal number such as "51.5" or "-0.12".
func IsCoord(s string) bool {
	return coordPattern.MatchString(s)
}

func validateAPIPath(fl validator.FieldLevel) bool {
	return IsAPIPath(fl.Field().String())
}

func validateTrackID(fl validator.FieldLevel) bool {
	return IsTrackID(fl.Field().String())
}

func validateCoord(fl validator.FieldLevel) bool {
	return IsCoord(fl.Field().String())
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":  "%s is required",
	"apipath":   "%s must be a relative path of [a-zA-Z0-9/._-]",
	"trackid":   "%s must match [a-z0-9-] and be at most 50 characters",
	"coord":     "%s must be a decimal number",
	"latitude":  "%s must be a valid latitude (-90 to 90)",
	"longitude": "%s must be a valid longitude (-180 to 180)",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"max":   "%s must be at most %s",
	"min":   "%s must be at least %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}
