// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// validateHTTPURL validates that a URL is an absolute http(s) URL with a host.
// Paths are allowed since upstream bases carry one (e.g. /ergast/f1/).
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}

// validateOrigin validates a browser origin: scheme and host only.
func validateOrigin(rawURL, fieldName string) error {
	if err := validateHTTPURL(rawURL, fieldName); err != nil {
		return err
	}
	parsedURL, _ := url.Parse(rawURL) //nolint:errcheck // parsed above
	if parsedURL.Path != "" {
		return fmt.Errorf("%s must be an origin without a path, got: %s", fieldName, rawURL)
	}
	return nil
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// withTrailingSlash normalizes base URLs that get segments appended.
func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
