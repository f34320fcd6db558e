package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// ScanCooldownMs ignores repeat scans on a rack within this window. 0 disables it.
	ScanCooldownMs int `mapstructure:"scan_cooldown_ms" default:"800"`
	// ExportPrefix is the bucket prefix for published exports.
	ExportPrefix string `mapstructure:"export_prefix" default:"exports"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// ScanCooldown returns the cooldown as a duration, zero when disabled.
func (c Config) ScanCooldown() time.Duration {
	if c.ScanCooldownMs <= 0 {
		return 0
	}
	return time.Duration(c.ScanCooldownMs) * time.Millisecond
}

// ShutdownTimeout returns the graceful shutdown bound, defaulting to ten seconds.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
