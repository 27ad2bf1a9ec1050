// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package proxy

import (
	"net/http"
	"regexp"
	"strings"
)

// Gatekeeper decides which request origins receive CORS headers.
//
// Allowed: the production origin exactly, http://localhost[:port] and
// http://127.0.0.1[:port]. Matching is anchored; there are no substring or
// wildcard-subdomain matches.
type Gatekeeper struct {
	pattern *regexp.Regexp
}

// NewGatekeeper builds a gatekeeper for the given production origin.
func NewGatekeeper(productionOrigin string) *Gatekeeper {
	productionOrigin = strings.TrimSuffix(productionOrigin, "/")
	pattern := `^(?:` + regexp.QuoteMeta(productionOrigin) +
		`|http://localhost(?::\d{1,5})?` +
		`|http://127\.0\.0\.1(?::\d{1,5})?)$`
	return &Gatekeeper{pattern: regexp.MustCompile(pattern)}
}

// Allow returns origin unchanged and true when it may be echoed back.
// An empty origin is never allowed.
func (g *Gatekeeper) Allow(origin string) (string, bool) {
	if origin == "" || !g.pattern.MatchString(origin) {
		return "", false
	}
	return origin, true
}

// AllowOriginFunc adapts Allow to go-chi/cors.
func (g *Gatekeeper) AllowOriginFunc(_ *http.Request, origin string) bool {
	_, ok := g.Allow(origin)
	return ok
}

// Apply sets Access-Control-Allow-Origin and Vary: Origin on h when the
// request origin is allowed, and strips any stale CORS header otherwise.
func (g *Gatekeeper) Apply(h http.Header, origin string) {
	h.Del("Access-Control-Allow-Origin")
	allowed, ok := g.Allow(origin)
	if !ok {
		return
	}
	h.Set("Access-Control-Allow-Origin", allowed)
	addVary(h, "Origin")
}

func addVary(h http.Header, value string) {
	for _, v := range h.Values("Vary") {
		for _, part := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(part), value) {
				return
			}
		}
	}
	h.Add("Vary", value)
}
