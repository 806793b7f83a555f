// Package logging wraps log/slog with mqtli's default fields and level
// filtering.
//
// Only the level is configurable, via the top-level log_level key in
// config.yaml (format and output are fixed to JSON on stdout):
//
//	log_level: info   # debug, info, warn, error
//
// Per-message pipeline errors are logged at Warn with topic/stage/error
// attributes; fatal startup errors are printed to stderr before exit, not
// logged.
package logging
