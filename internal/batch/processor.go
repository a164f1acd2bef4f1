// Package batch drives the compiler over a line-oriented stream: one format
// template per line, with optional trailing comma-delimited payload fields
// that are echoed through unchanged.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edi-tools/dtrex/pkg/dtrex"
)

// Processor reads template lines, compiles each into a regex, and writes
// `original_line,derived_regex` pairs in input order. Lines that fail to
// parse are reported through the logger and skipped in the output; I/O
// failures on either stream abort the whole run.
type Processor struct {
	compiler dtrex.Compiler
	logger   dtrex.Logger
	workers  int
}

// Summary describes one completed batch run.
type Summary struct {
	RunID    string        // unique identity of this run, for log correlation
	Lines    int           // input lines consumed
	Compiled int           // lines written to the output stream
	Failed   int           // lines skipped with a diagnostic
	Duration time.Duration // wall-clock time for the run
}

// New creates a Processor. workers controls line-level parallelism; values
// below one fall back to dtrex.DefaultWorkers (fully synchronous).
func New(compiler dtrex.Compiler, logger dtrex.Logger, workers int) *Processor {
	if workers < 1 {
		workers = dtrex.DefaultWorkers
	}
	return &Processor{
		compiler: compiler,
		logger:   logger,
		workers:  workers,
	}
}

// job is one input line headed for a compile worker.
type job struct {
	index int
	line  string
}

// result is one compiled (or rejected) line awaiting in-order emission.
type result struct {
	index int
	line  string
	regex string
	err   error
}

// Run consumes every line of r and emits compiled lines to w in input order.
// The returned Summary is valid whenever the error is nil. A SyntaxError on a
// line is non-fatal: it is logged and the line is skipped. Errors reading r
// or writing w are fatal and satisfy errors.Is(err, dtrex.ErrStreamFailed).
func (p *Processor) Run(r io.Reader, w io.Writer) (*Summary, error) {
	start := time.Now()
	summary := &Summary{RunID: uuid.NewString()}
	p.logger.Verbose("run %s: compiling templates with %d worker(s)", summary.RunID, p.workers)

	out := bufio.NewWriter(w)
	var err error
	if p.workers == 1 {
		err = p.runSequential(r, out, summary)
	} else {
		err = p.runConcurrent(r, out, summary)
	}
	if err != nil {
		return nil, err
	}
	if ferr := out.Flush(); ferr != nil {
		return nil, fmt.Errorf("%w: flushing output: %v", dtrex.ErrStreamFailed, ferr)
	}

	summary.Duration = time.Since(start)
	p.logger.Verbose("run %s: %d line(s) in, %d compiled, %d failed",
		summary.RunID, summary.Lines, summary.Compiled, summary.Failed)
	return summary, nil
}

// runSequential is the default single-threaded path: each line is fully
// parsed, translated, and written before the next is read.
func (p *Processor) runSequential(r io.Reader, out *bufio.Writer, summary *Summary) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		summary.Lines++
		res := p.compileLine(summary.Lines, scanner.Text())
		if err := p.emit(out, summary, res); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: reading input: %v", dtrex.ErrStreamFailed, err)
	}
	return nil
}

// runConcurrent fans lines out to compile workers. The grammar behind the
// compiler is immutable and shared read-only; per-line state stays inside the
// worker owning that line. Results are buffered and re-emitted in input
// order, so the output is byte-identical to the sequential path.
func (p *Processor) runConcurrent(r io.Reader, out *bufio.Writer, summary *Summary) error {
	jobs := make(chan job, p.workers)
	results := make(chan result, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- p.compileLine(j.index, j.line)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var scanErr error
	go func() {
		defer close(jobs)
		scanner := bufio.NewScanner(r)
		index := 0
		for scanner.Scan() {
			index++
			jobs <- job{index: index, line: scanner.Text()}
		}
		scanErr = scanner.Err()
	}()

	var writeErr error
	pending := make(map[int]result)
	next := 1
	for res := range results {
		pending[res.index] = res
		for {
			buffered, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			summary.Lines++
			if writeErr != nil {
				// already fatal; keep draining so the workers can finish
				continue
			}
			writeErr = p.emit(out, summary, buffered)
		}
	}
	if writeErr != nil {
		return writeErr
	}
	if scanErr != nil {
		return fmt.Errorf("%w: reading input: %v", dtrex.ErrStreamFailed, scanErr)
	}
	return nil
}

// compileLine compiles the first comma-delimited field of one line.
// Leading and trailing whitespace is stripped; the remaining fields ride
// along untouched.
func (p *Processor) compileLine(index int, raw string) result {
	line := strings.TrimSpace(raw)
	template, _, _ := strings.Cut(line, dtrex.FieldDelimiter)
	p.logger.Verbose("line %d: parsing %q", index, template)

	regex, err := p.compiler.Compile(template)
	return result{index: index, line: line, regex: regex, err: err}
}

// emit writes one successful result to the output stream, or logs the
// diagnostic for a failed one. Diagnostics never reach the output stream.
func (p *Processor) emit(out *bufio.Writer, summary *Summary, res result) error {
	if res.err != nil {
		summary.Failed++
		p.logger.Error("line %d: %v", res.index, res.err)
		return nil
	}
	if _, err := fmt.Fprintf(out, "%s%s%s\n", res.line, dtrex.FieldDelimiter, res.regex); err != nil {
		return fmt.Errorf("%w: writing output: %v", dtrex.ErrStreamFailed, err)
	}
	summary.Compiled++
	return nil
}
