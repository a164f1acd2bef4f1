// Package logging provides concrete implementations of the dtrex.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
// Loggers are the diagnostics channel of a batch run and never write to the
// compiled-output stream.
package logging
