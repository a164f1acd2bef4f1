package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/edi-tools/dtrex/internal/console"
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out     io.Writer
	mode    console.Mode
	verbose bool
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
// The [ERROR] prefix is styled when stderr is an interactive terminal.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		out:     os.Stderr,
		mode:    console.DetectMode(),
		verbose: verbose,
	}
}

// NewConsoleLoggerTo creates a ConsoleLogger writing plain (unstyled) output
// to the given writer. Intended for tests and embedded use.
func NewConsoleLoggerTo(out io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		out:     out,
		mode:    console.ModePlain,
		verbose: verbose,
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(console.Render(l.mode, console.MutedStyle, "[VERBOSE]")+" "+format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(console.Render(l.mode, console.ErrorStyle, "[ERROR]")+" "+format, args...)
}

func (l *ConsoleLogger) write(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, format+"\n", args...)
	} else {
		fmt.Fprint(l.out, format+"\n")
	}
}
