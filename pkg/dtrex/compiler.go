package dtrex

// Compiler derives a fully anchored validation regex from a closed-vocabulary
// datetime format template such as "YYYY-MM-DD" or "YYYYMMDDThh:mm:ssZ".
//
// Compile is a pure function of the template text: the same input always
// yields byte-identical output, and a rejected template fails identically on
// every attempt. Implementations must be safe for concurrent use, since the
// batch processor may compile distinct lines from multiple goroutines.
type Compiler interface {
	// Compile returns the anchored regex for the template, or an error
	// satisfying errors.Is(err, ErrSyntax) when the template matches no
	// grammar alternative. The regex is anchored with ^ and $; callers can
	// rely on whole-string matching, never substring matching.
	Compile(template string) (string, error)
}
