package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/edi-tools/dtrex/internal/batch"
	"github.com/edi-tools/dtrex/internal/compiler"
	"github.com/edi-tools/dtrex/internal/config"
	"github.com/edi-tools/dtrex/internal/console"
	"github.com/edi-tools/dtrex/internal/logging"
	"github.com/edi-tools/dtrex/pkg/dtrex"
)

var compileCmd = &cobra.Command{
	Use:   "compile [template ...]",
	Short: "Compile format templates into anchored validation regexes",
	Long: `Compile reads datetime format templates and derives an anchored regular
expression for each one.

Without arguments it runs in batch mode: templates are read line by line
from --input (or stdin), and each successful line is written to --output
(or stdout) as <original_line>,<derived_regex>. A line whose first field
matches no grammar alternative is reported on stderr and skipped; the run
continues with the next line and still exits 0.

With template arguments it compiles each operand directly and prints one
regex per line; a bad operand fails the command.

Configuration precedence: flag > environment ($DTREX_INPUT, $DTREX_OUTPUT,
$DTREX_WORKERS, $DTREX_VERBOSE) > dtrex.yaml in the working directory >
built-in default.

Examples:
  # Compile a file of templates to a CSV report
  dtrex compile --input formats.csv --output report.csv

  # Filter style: stdin to stdout
  cat formats.csv | dtrex compile > report.csv

  # Parallel batch for large inputs; output order still matches input order
  dtrex compile --input formats.csv --workers 8

  # One-off templates
  dtrex compile YYYY-MM-DD hh:mm:ss

  # Load environment overrides from a file
  dtrex compile --env-file prod.env`,
	RunE: runCompile,
}

type compileFlagValues struct {
	input   string
	output  string
	envFile string
	workers int
}

var compileFlags compileFlagValues

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileFlags.input, "input", "i", "",
		"Input file to read format templates from (default: stdin)\n"+
			"Precedence: --input > $DTREX_INPUT > dtrex.yaml")
	compileCmd.Flags().StringVarP(&compileFlags.output, "output", "o", "",
		"Output file for <line>,<regex> pairs (default: stdout)\n"+
			"Precedence: --output > $DTREX_OUTPUT > dtrex.yaml")
	compileCmd.Flags().IntVarP(&compileFlags.workers, "workers", "w", 0,
		"Concurrent compile workers; output order always matches input order\n"+
			"Precedence: --workers > $DTREX_WORKERS > dtrex.yaml > 1")
	compileCmd.Flags().StringVar(&compileFlags.envFile, "env-file", "",
		"Load environment variables from a .env style file before resolving\n"+
			"configuration (existing variables are not overridden)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(cfg.Verbose)
	comp := compiler.New()

	if len(args) > 0 {
		return compileOperands(comp, args)
	}

	in, cleanupIn, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	defer cleanupIn()

	out, cleanupOut, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}

	processor := batch.New(comp, logger, cfg.Workers)
	summary, err := processor.Run(in, out)
	if cerr := cleanupOut(); cerr != nil && err == nil {
		err = fmt.Errorf("%w: closing output: %v", dtrex.ErrStreamFailed, cerr)
	}
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

// resolveConfig layers flag > environment > dtrex.yaml > default.
func resolveConfig(cmd *cobra.Command) (*config.RunConfig, error) {
	if compileFlags.envFile != "" {
		if err := godotenv.Load(compileFlags.envFile); err != nil {
			return nil, fmt.Errorf("%w: loading env file %s: %v", dtrex.ErrInvalidConfig, compileFlags.envFile, err)
		}
	}

	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnvironment(); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("input") {
		cfg.Input = compileFlags.input
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = compileFlags.output
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = compileFlags.workers
	}
	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// compileOperands handles `dtrex compile YYYY-MM-DD ...`: one regex per
// operand on stdout. Unlike batch mode, a bad operand is fatal.
func compileOperands(comp dtrex.Compiler, operands []string) error {
	for _, template := range operands {
		regex, err := comp.Compile(template)
		if err != nil {
			return err
		}
		fmt.Println(regex)
	}
	return nil
}

// openInput returns the template source and a cleanup func. An empty path
// selects stdin.
func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", dtrex.ErrInputNotFound, path)
		}
		return nil, nil, fmt.Errorf("%w: opening input %s: %v", dtrex.ErrStreamFailed, path, err)
	}
	return f, func() { f.Close() }, nil
}

// openOutput returns the report sink and a cleanup func whose error must be
// checked: a failed close can lose buffered output. An empty path selects
// stdout, which is not closed.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: creating output %s: %v", dtrex.ErrStreamFailed, path, err)
	}
	return f, f.Close, nil
}

// printSummary writes the end-of-run summary to stderr, styled when a human
// is watching. stdout stays reserved for compiled output.
func printSummary(summary *batch.Summary) {
	mode := console.DetectMode()

	status := console.Render(mode, console.SuccessStyle, "ok")
	failed := fmt.Sprintf("%d failed", summary.Failed)
	if summary.Failed > 0 {
		status = console.Render(mode, console.ErrorStyle, "completed with failures")
		failed = console.Render(mode, console.ErrorStyle, failed)
	}

	fmt.Fprintf(os.Stderr, "%s: %d line(s), %d compiled, %s in %s %s\n",
		status, summary.Lines, summary.Compiled, failed,
		summary.Duration.Round(time.Millisecond),
		console.Render(mode, console.MutedStyle, "(run "+summary.RunID+")"))
}
