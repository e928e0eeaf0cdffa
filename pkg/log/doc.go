// Package log provides protocol capture for PHD associations.
//
// Protocol capture is separate from operational logging (slog): it is a
// complete machine-readable trace of every APDU sent and received, of
// association state changes and of protocol errors, suitable for replay
// and offline analysis.
//
// # Basic Usage
//
//	// Console output via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// Binary capture file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/phd/manager.plog")
//
//	// Both
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Capture files are a sequence of CBOR-encoded Event records with integer
// keys. Reader streams them back, optionally through a Filter.
package log
