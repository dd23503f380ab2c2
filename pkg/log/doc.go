// Package log provides structured protocol logging for the wallet core.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at every layer (transport frames, decoded wire
// messages, gate transitions, dispatcher outcomes). It is separate from
// operational logging (slog): protocol capture is a complete machine-readable
// trace for debugging and analysis.
//
// # Basic Usage
//
//	// Development: log to console via slog
//	cfg.EventLog = log.NewSlogAdapter(slog.Default())
//
//	// Persistent capture: CBOR file, stamped with the device ID
//	fl, _ := log.NewFileLogger("/var/log/skyguard/device.glog",
//		log.WithDeviceID(store.DeviceID()), log.WithGateSync())
//
//	// Both
//	cfg.EventLog = log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # Secrets
//
// Message payloads are passed through wire.Redact before they are stored in
// an Event, so PINs, passphrases and mnemonics never reach a sink.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with the .glog extension.
// The skyguard-log tool views, filters and summarises them.
package log
