// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package proxy

import (
	"net/http"
	"strconv"
	"time"
)

// Header names and values shared by every proxy response.
const (
	headerXCache = "X-Cache"
	cacheHit     = "HIT"
	cacheMiss    = "MISS"

	// storedCORSPlaceholder is written into cached copies only. It is always
	// replaced by the gatekeeper's decision before a response leaves.
	storedCORSPlaceholder = "*"

	contentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"
	strictTransport       = "max-age=31536000; includeSubDomains"
	referrerPolicy        = "strict-origin-when-cross-origin"

	preflightMethods = "GET, OPTIONS"
	preflightHeaders = "Content-Type"
	preflightMaxAge  = "86400"
)

// setSecurityHeaders applies the fixed security bundle.
func setSecurityHeaders(h http.Header) {
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Content-Security-Policy", contentSecurityPolicy)
	h.Set("Strict-Transport-Security", strictTransport)
	h.Set("Referrer-Policy", referrerPolicy)
}

func cacheControl(ttl time.Duration) string {
	return "public, max-age=" + strconv.Itoa(int(ttl/time.Second))
}

// storedHeaders builds the header set kept with a cache entry.
func storedHeaders(res Resource) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", cacheControl(res.TTL))
	h.Set("Access-Control-Allow-Origin", storedCORSPlaceholder)
	setSecurityHeaders(h)
	return h
}

// clientHeaders clones stored headers and overwrites freshness, cache status
// and CORS per current policy. Stored CORS values are never trusted.
func (h *Handler) clientHeaders(stored http.Header, res Resource, xcache, origin string) http.Header {
	out := stored.Clone()
	if out == nil {
		out = http.Header{}
	}
	out.Del("Vary")
	out.Set("Content-Type", "application/json")
	out.Set("Cache-Control", cacheControl(res.TTL))
	out.Set(headerXCache, xcache)
	setSecurityHeaders(out)
	h.gatekeeper.Apply(out, origin)
	return out
}

// errorHeaders builds headers for 4xx/5xx responses: never cacheable and
// without X-Cache.
func (h *Handler) errorHeaders(origin string) http.Header {
	out := http.Header{}
	out.Set("Content-Type", "application/json")
	out.Set("Cache-Control", "no-store")
	setSecurityHeaders(out)
	h.gatekeeper.Apply(out, origin)
	return out
}
