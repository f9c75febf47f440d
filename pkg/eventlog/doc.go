// Package eventlog provides structured capture of subscription protocol
// events: notifications handed to publish responses, keep-alives, state
// transitions, republishes, and monitored-item lifecycle.
//
// It is separate from operational logging (slog) - event capture provides a
// complete machine-readable trace for debugging and analysis.
//
// # Basic Usage
//
// Owners wire a Logger into the subscription hooks:
//
//	// For development: log to console via slog
//	capture := eventlog.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	capture, _ := eventlog.NewFileLogger("/var/log/uaserve/session.ualog")
//
//	// Both: use MultiLogger
//	capture := eventlog.NewMultiLogger(
//	    eventlog.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files use CBOR encoding with integer keys and .ualog extension.
// Reader streams them back, optionally filtered.
package eventlog
