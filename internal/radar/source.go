// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package radar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomtom215/circuitweather/internal/metrics"
)

// maxManifestBytes caps a manifest body.
const maxManifestBytes = 4 << 20

// HTTPSource fetches the manifest over HTTP, either from the proxy's
// /api/radar route or directly from the radar host in dev mode.
type HTTPSource struct {
	url       string
	client    *http.Client
	userAgent string
	tileSize  int
}

// NewHTTPSource creates a manifest source. A nil client gets a 10s timeout.
func NewHTTPSource(url string, client *http.Client, userAgent string, tileSize int) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSource{url: url, client: client, userAgent: userAgent, tileSize: tileSize}
}

// URL returns the manifest URL.
func (s *HTTPSource) URL() string { return s.url }

// FetchManifest implements ManifestSource.
func (s *HTTPSource) FetchManifest(ctx context.Context) (Manifest, error) {
	start := time.Now()
	defer func() {
		metrics.RadarManifestFetchDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Manifest{}, fmt.Errorf("build manifest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Manifest{}, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Manifest{}, fmt.Errorf("fetch manifest: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestBytes))
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(body, s.tileSize)
}

// SourceFunc adapts a function to ManifestSource.
type SourceFunc func(ctx context.Context) (Manifest, error)

// FetchManifest implements ManifestSource.
func (f SourceFunc) FetchManifest(ctx context.Context) (Manifest, error) {
	return f(ctx)
}
