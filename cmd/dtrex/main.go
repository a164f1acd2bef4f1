package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/edi-tools/dtrex/internal/cli"
	"github.com/edi-tools/dtrex/pkg/dtrex"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(dtrex.ExitPanic)
		}
	}()

	if os.Getenv("DTREX_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(dtrex.ExitCodeForError(err))
	}
}
