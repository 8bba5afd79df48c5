// Package httputil provides HTTP utilities for the inventory API client.
//
// # Overview
//
// This package provides the infrastructure used by the Homebox client:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores API responses in the filesystem (~/.cache/labelsmith/)
// with configurable TTL. This speeds up repeated label runs over the same
// asset ranges and reduces load on the inventory server.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, _ := cache.Get("asset:000-001", &record)  // Check cache
//	if !ok {
//	    record = fetchFromAPI()
//	    cache.Set("asset:000-001", record)        // Store for later
//	}
//
// Cache keys should be namespaced per resource to avoid collisions.
//
// # Retry
//
// [Retry] wraps API requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// Only errors wrapped with [RetryableError] are retried; everything else
// (404s, auth failures) returns immediately.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/labelsmith/
//   - Max retries: 3
//   - Base backoff: 1 second
package httputil
