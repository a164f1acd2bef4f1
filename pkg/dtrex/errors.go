package dtrex

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := compiler.Compile("YYYY/MM/DD")
//	if errors.Is(err, dtrex.ErrSyntax) {
//	    // Handle an unsupported format template
//	}
var (
	// ErrSyntax indicates a format template matched no grammar alternative.
	ErrSyntax = errors.New("format template not recognized")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates the input file was not found.
	ErrInputNotFound = errors.New("input file not found")

	// ErrStreamFailed indicates a read or write failure on the surrounding
	// input or output stream. Fatal to the whole run.
	ErrStreamFailed = errors.New("stream failure")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInputNotFound):
		return ExitInputMissing
	case errors.Is(err, ErrStreamFailed):
		return ExitIOFailure
	case errors.Is(err, ErrSyntax):
		return ExitSyntaxError
	}

	// Cobra surfaces flag and argument misuse as plain errors; classify them
	// by message so the process exits with the conventional usage code.
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "invalid argument") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "accepts ") {
		return ExitUsageError
	}

	return ExitGeneralError
}
