// Circuit Weather - Motorsport Circuit Radar and Edge Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/circuitweather

/*
Package metrics defines the Prometheus collectors exported at /metrics.

All collectors are registered on the default registry through promauto at
package init. Helpers such as RecordProxyRequest keep label ordering in one
place.

Metric families:

	proxy_requests_total{resource,cache,status_code}
	upstream_request_duration_seconds{resource}
	upstream_errors_total{resource,error_type}
	cache_store_errors_total{backend,operation}
	cache_entries{backend}
	api_requests_total, api_request_duration_seconds, api_active_requests
	api_rate_limit_hits_total{endpoint}
	circuit_breaker_state{name}, circuit_breaker_requests_total{name,result}
	circuit_breaker_state_transitions_total{name,from_state,to_state}
	radar_frames_advanced_total{view,cause}
	radar_frame_count{view}, radar_materialized_layers{view}
	radar_reconcile_total{view,outcome}
	radar_manifest_fetch_duration_seconds
	radar_tile_load_timeouts_total{view}
	websocket_connections, websocket_messages_{sent,received}_total
	websocket_errors_total{error_type}
	app_info{version,go_version}
*/
package metrics
