/*
Package log provides structured logging for Archboard built on zerolog.

The package wraps a single global zerolog logger configured once at startup
via Init, and exposes helpers for creating child loggers scoped to a
component or session.

# Usage

Initialization (once, in main):

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: false,
	})

Component-scoped logging:

	logger := log.WithComponent("simulator")
	logger.Info().Float64("speed", 1.5).Msg("simulation started")

# Output Formats

JSONOutput true emits machine-readable JSON lines; false emits a
human-readable console format with RFC3339 timestamps. Production deployments
should use JSON output so logs can be shipped and indexed.
*/
package log
