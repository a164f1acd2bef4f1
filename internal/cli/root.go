package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dtrex",
	Short: "Datetime format-template to regex compiler",
	Long: `dtrex compiles closed-vocabulary datetime format templates such as
YYYY-MM-DD or YYYYMMDDThh:mm:ssZ into fully anchored regular expressions
that validate literal datetime strings claiming to follow the template.

Templates are read one per line; the first comma-delimited field is the
template and any trailing fields are echoed through unchanged. Each
successful line is written as <original_line>,<derived_regex>. Lines that
match no grammar alternative are reported on stderr and skipped; the batch
keeps going.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Input file not found
  12 - Read or write failure on a stream
  13 - Template operand failed to parse`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for dtrex")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
