// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package tiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/metrics"
	"github.com/tomtom215/circuitweather/internal/radar"
)

const maxTileBody = 2 << 20

// PrefetchConfig locates the tile each prefetch layer fetches.
type PrefetchConfig struct {
	Lat  float64
	Lon  float64
	Zoom int

	UserAgent string
	Timeout   time.Duration

	// RequestsPerSecond paces tile fetches. Zero disables pacing.
	RequestsPerSecond float64
	Burst             int
}

// PrefetchFactory implements radar.LayerFactory for headless use. Every
// layer fetches the one tile covering the configured point, and counts as
// loaded once the tile server answers with a 2xx.
type PrefetchFactory struct {
	cfg     PrefetchConfig
	client  *http.Client
	limiter *rate.Limiter

	wg sync.WaitGroup
}

// NewPrefetchFactory creates a factory. A nil client uses one with cfg.Timeout.
func NewPrefetchFactory(cfg PrefetchConfig, client *http.Client) *PrefetchFactory {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	f := &PrefetchFactory{cfg: cfg, client: client}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return f
}

// NewLayer implements radar.LayerFactory.
func (f *PrefetchFactory) NewLayer(index int, frame radar.FrameDescriptor, opts radar.LayerOptions) radar.Layer {
	zoom := f.cfg.Zoom
	if opts.MaxNativeZoom > 0 && zoom > opts.MaxNativeZoom {
		zoom = opts.MaxNativeZoom
	}
	coord := TileFor(f.cfg.Lat, f.cfg.Lon, zoom)

	ctx, cancel := context.WithCancel(context.Background())
	l := &PrefetchLayer{
		index:   index,
		url:     frame.TileURL(coord.Z, coord.X, coord.Y),
		coord:   coord,
		opacity: opts.Opacity,
		cancel:  cancel,
		loaded:  make(chan struct{}),
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.fetch(ctx, l)
	}()
	return l
}

// Wait blocks until every in-flight prefetch has finished.
func (f *PrefetchFactory) Wait() {
	f.wg.Wait()
}

func (f *PrefetchFactory) fetch(ctx context.Context, l *PrefetchLayer) {
	result := "ok"
	defer func() { metrics.RadarTilePrefetches.WithLabelValues(result).Inc() }()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			result = "canceled"
			return
		}
	}

	err := f.get(ctx, l.url)
	switch {
	case err == nil:
		l.markLoaded()
	case ctx.Err() != nil:
		result = "canceled"
	default:
		var se *statusError
		if errors.As(err, &se) {
			result = "status"
		} else {
			result = "error"
		}
		logging.Debug().Err(err).Int("index", l.index).Str("tile", l.coord.String()).Msg("radar tile prefetch failed")
	}
}

type statusError struct{ status int }

func (e *statusError) Error() string {
	return fmt.Sprintf("tile server returned %d", e.status)
}

func (f *PrefetchFactory) get(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("build tile request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch tile: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxTileBody)); err != nil {
		return fmt.Errorf("read tile: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{status: resp.StatusCode}
	}
	return nil
}

// PrefetchLayer is a radar.Layer backed by one prefetched tile.
type PrefetchLayer struct {
	index  int
	url    string
	coord  Coord
	cancel context.CancelFunc

	mu      sync.Mutex
	opacity float64
	removed bool

	loadOnce sync.Once
	loaded   chan struct{}
}

// URL returns the tile URL the layer fetches.
func (l *PrefetchLayer) URL() string { return l.url }

// Coord returns the tile the layer fetches.
func (l *PrefetchLayer) Coord() Coord { return l.coord }

// Opacity returns the last opacity set on the layer.
func (l *PrefetchLayer) Opacity() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opacity
}

// SetOpacity implements radar.Layer.
func (l *PrefetchLayer) SetOpacity(v float64) {
	l.mu.Lock()
	l.opacity = math.Max(0, math.Min(1, v))
	l.mu.Unlock()
}

// Remove implements radar.Layer. It cancels an unfinished fetch.
func (l *PrefetchLayer) Remove() {
	l.mu.Lock()
	l.removed = true
	l.mu.Unlock()
	l.cancel()
}

// Removed reports whether Remove was called.
func (l *PrefetchLayer) Removed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removed
}

// Loaded implements radar.Layer.
func (l *PrefetchLayer) Loaded() <-chan struct{} { return l.loaded }

func (l *PrefetchLayer) markLoaded() {
	l.loadOnce.Do(func() { close(l.loaded) })
}
