// Package log provides structured protocol capture for ledly.
//
// This package defines the Logger interface and Event types for recording
// what the library sent to a peripheral: every command buffer written,
// connection and characteristic assignment changes, software animation
// progress, and errors. It is separate from operational logging (slog) -
// protocol capture is a complete machine-readable trace of the bytes on the
// air, useful when reverse-engineering a new light family.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to a binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("session.llog")
//
//	// Both
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys, usually
// named with the .llog extension. The ledly-log tool views them and prints
// statistics.
package log
