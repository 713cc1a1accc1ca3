// Package logger provides a small leveled logger on top of zerolog.
//
// The logger supports four levels: Debug, Info, Warn, and Error.
// Each entry is rendered by a zerolog ConsoleWriter with a timestamp,
// the level, the message and an optional component field.
//
// # Basic Usage
//
// Using the default logger (writes to stderr):
//
//	logger.Info("", "prepare-test started")
//	logger.Info("cleanup", "removed %s", path)
//	logger.Warn("staging", "copy failed: %v", err)
//
// Creating a custom logger:
//
//	l := logger.New(os.Stderr, logger.LevelDebug)
//	l.Debug("dispatch", "lookup %q", name)
//
// # Log Levels
//
// Messages below the configured level are filtered:
//   - LevelDebug: all messages
//   - LevelInfo: Info, Warn, Error
//   - LevelWarn: Warn, Error
//   - LevelError: Error only
//
// # Thread Safety
//
// All logging operations are protected by a mutex and safe for concurrent use.
package logger
