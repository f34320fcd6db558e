// Package logger builds the zap logger shared by the server and the CLI.
//
// New picks the development or production preset from the level, the encoding
// from Format, and optionally tees output into a file so a scanning shift can
// be reviewed afterwards.
//
// Request logs are correlated by ray id: WithRayID tags a logger with the id
// stored by the rayid middleware, and Middleware writes one line per request
// with its status and latency.
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	app.Use(logger.Middleware(log))
package logger
