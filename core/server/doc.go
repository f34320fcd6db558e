// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// settings it reads: the listen port, the API key, the per-rack scan cooldown, and
// where published exports are written in the bucket.
//
// # Usage
//
// This package is embedded by core/config and consumed by cmd/start and the racks
// feature, which turns ScanCooldown into a per-rack rate limiter.
package server
