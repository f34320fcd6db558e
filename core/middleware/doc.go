// Package middleware groups the Fiber middleware mounted in front of the
// feature routes.
//
// The rayid subpackage tags every request with an id that ends up in the
// X-Ray-ID response header and in every log line for that request. The auth
// subpackage rejects API calls that lack the configured X-API-Key. When no key
// is configured the API is open, which suits a single scanning station on a
// private network.
//
// Registration order matters: rayid first, then request logging, then the
// public endpoints (swagger, metrics), then auth.
package middleware
