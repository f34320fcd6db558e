// Package auth implements API key authentication for the Fiber application.
//
// Requests must carry the configured key in the X-API-Key header. An empty key in
// the configuration turns the check off, which is convenient for local use.
package auth
