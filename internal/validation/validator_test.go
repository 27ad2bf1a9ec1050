// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

func TestIsAPIPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"current.json", true},
		{"2024/1/results.json", true},
		{"current/next", true},
		{"drivers/max_verstappen.json", true},
		{"../etc/passwd", false},
		{"a/../b", false},
		{"a//b", false},
		{"/abs", false},
		{"", false},
		{"a b", false},
		{"a?b=1", false},
		{"a%2e%2e", false},
		{"résultats", false},
		{strings.Repeat("a", 255), true},
		{strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := IsAPIPath(tt.input); got != tt.want {
				t.Errorf("IsAPIPath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsTrackID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"gb-1948", true},
		{"monza", true},
		{"GB-1948", false},
		{"gb/1948", false},
		{"gb_1948", false},
		{"", false},
		{strings.Repeat("a", 50), true},
		{strings.Repeat("a", 51), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := IsTrackID(tt.input); got != tt.want {
				t.Errorf("IsTrackID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCoord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"51.5", true},
		{"-0.12", true},
		{"0", true},
		{"51,5", false},
		{"abc", false},
		{"", false},
		{"1e5", false},
		{"+1", false},
		{"1.", false},
		{".5", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := IsCoord(tt.input); got != tt.want {
				t.Errorf("IsCoord(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

type sampleRequest struct {
	Path string `validate:"required,apipath"`
	ID   string `validate:"required,trackid"`
	Lat  string `validate:"required,coord"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(&sampleRequest{Path: "current.json", ID: "monza", Lat: "45.6"}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	err := ValidateStruct(&sampleRequest{Path: "../x", ID: "monza", Lat: "45.6"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 1 || err.Errors()[0].Field() != "Path" {
		t.Fatalf("unexpected errors: %v", err)
	}
	if tag := err.Errors()[0].Tag(); tag != "apipath" {
		t.Errorf("Tag() = %q, want apipath", tag)
	}

	err = ValidateStruct(&sampleRequest{})
	if err == nil || len(err.Errors()) != 3 {
		t.Fatalf("expected three required errors, got %v", err)
	}
	if !strings.Contains(err.Error(), "Path is required") {
		t.Errorf("Error() = %q", err.Error())
	}
}
