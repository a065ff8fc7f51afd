// Package log provides structured connection event logging for asynccomm.
//
// This package defines the Logger interface and Event types for capturing
// connection lifecycle events at two layers: the transport (dial, close)
// and the connection manager (attempts, state changes). It is separate from
// operational logging (slog) - event capture provides a complete
// machine-readable trace for debugging reconnect behavior.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/asynccomm/probe.alog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - Attempt: a connect request was issued (AttemptEvent)
//   - State: connection state changed (StateChangeEvent)
//   - Error: a failure at any layer (ErrorEventData)
//
// # File Format
//
// Log files use CBOR encoding with .alog extension. The asynccomm-log CLI
// tool reads and filters them.
package log
