package dtrex

// Logger provides a pluggable logging interface for dtrex operations.
// Implementations must be safe for concurrent use by multiple goroutines.
//
// Diagnostics go through a Logger and never through the output stream, so a
// failed line can never corrupt or interleave with compiled output.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	// Always logged regardless of verbose mode.
	Info(format string, args ...interface{})

	// Error logs error messages.
	// Always logged regardless of verbose mode.
	Error(format string, args ...interface{})
}
