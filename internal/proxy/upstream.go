// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/circuitweather/internal/config"
	"github.com/tomtom215/circuitweather/internal/logging"
	"github.com/tomtom215/circuitweather/internal/metrics"
)

// maxUpstreamBody caps how much of an upstream body is read.
const maxUpstreamBody = 16 << 20

// UpstreamResponse is a fully read upstream answer.
type UpstreamResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// Fetcher performs upstream GETs for a resource family.
//
// A nil response with an error is a transport failure. A non-nil response is
// always returned for an HTTP answer, whatever its status; 5xx answers also
// carry an *UpstreamStatusError.
type Fetcher interface {
	Fetch(ctx context.Context, resource, target string) (*UpstreamResponse, error)
}

// Upstream fetches from third-party APIs with one circuit breaker and one
// token bucket per resource family.
type Upstream struct {
	client    *http.Client
	userAgent string
	breakers  map[string]*gobreaker.CircuitBreaker[*UpstreamResponse]
	limiters  map[string]*rate.Limiter
}

// NewUpstream creates an upstream client for every family in Resources.
//
// Circuit breaker configuration per family:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewUpstream(cfg config.UpstreamConfig) *Upstream {
	u := &Upstream{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		breakers:  make(map[string]*gobreaker.CircuitBreaker[*UpstreamResponse], len(Resources)),
		limiters:  make(map[string]*rate.Limiter, len(Resources)),
	}

	for _, res := range Resources {
		u.breakers[res.Name] = newBreaker("upstream-" + res.Name)
		if cfg.RequestsPerSecond > 0 {
			u.limiters[res.Name] = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
		}
	}
	return u
}

func newBreaker(name string) *gobreaker.CircuitBreaker[*UpstreamResponse] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[*UpstreamResponse](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
}

// Fetch implements Fetcher.
func (u *Upstream) Fetch(ctx context.Context, resource, target string) (*UpstreamResponse, error) {
	if limiter := u.limiters[resource]; limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s upstream pacing: %w", resource, err)
		}
	}

	cb, ok := u.breakers[resource]
	if !ok {
		return nil, fmt.Errorf("unknown upstream resource %q", resource)
	}

	start := time.Now()
	resp, err := cb.Execute(func() (*UpstreamResponse, error) {
		return u.do(ctx, resource, target)
	})
	u.record(resource, cb.Name(), time.Since(start), err)
	return resp, err
}

func (u *Upstream) do(ctx context.Context, resource, target string) (*UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", u.userAgent)

	httpResp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s upstream request: %w", resource, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("read %s upstream body: %w", resource, err)
	}

	resp := &UpstreamResponse{
		Status: httpResp.StatusCode,
		Header: httpResp.Header.Clone(),
		Body:   body,
	}
	if httpResp.StatusCode >= http.StatusInternalServerError {
		return resp, &UpstreamStatusError{Resource: resource, Status: httpResp.StatusCode}
	}
	return resp, nil
}

func (u *Upstream) record(resource, breaker string, d time.Duration, err error) {
	var statusErr *UpstreamStatusError
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(breaker, "success").Inc()
		metrics.RecordUpstreamFetch(resource, d, "")
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breaker, "rejected").Inc()
		metrics.RecordUpstreamFetch(resource, d, "breaker_open")
	case errors.As(err, &statusErr):
		metrics.CircuitBreakerRequests.WithLabelValues(breaker, "failure").Inc()
		metrics.RecordUpstreamFetch(resource, d, "status")
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(breaker, "failure").Inc()
		metrics.RecordUpstreamFetch(resource, d, "transport")
	}
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

var _ Fetcher = (*Upstream)(nil)
