package dtrex

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Run completed successfully
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration
	ExitInputMissing = 11 // Input file not found or unreadable
	ExitIOFailure    = 12 // Read or write failure on a stream
	ExitSyntaxError  = 13 // Format template matched no grammar alternative
)

const (
	// DefaultWorkers is the number of concurrent compile workers when none is
	// configured. One worker means fully synchronous, in-order processing.
	DefaultWorkers = 1

	// FieldDelimiter separates the format template from any trailing payload
	// fields on an input line, and the derived regex on an output line.
	FieldDelimiter = ","

	// MaxTemplatePreviewLength is the maximum number of characters of a
	// rejected template shown in diagnostics. Templates are normally short;
	// this guards against pathological input lines flooding the log.
	MaxTemplatePreviewLength = 80
)
