// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))
	slogger.Warn("service restarted", "service", "http-server", "attempt", 2)

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"http-server"`, `"attempt":2`, "service restarted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestSlogHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf))).WithGroup("supervisor").With("name", "api-layer")
	slogger.Info("started")

	if !strings.Contains(buf.String(), `"supervisor.name":"api-layer"`) {
		t.Errorf("expected grouped key, got %s", buf.String())
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandlerWithLogger(zerolog.New(nil).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}
