package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// commonTemplates are frequently used template forms offered for shell
// completion of compile operands. The grammar accepts more shapes than
// listed here; these are just convenient starting points.
var commonTemplates = []string{
	"YYYY",
	"YYYY-MM",
	"YYYY-MM-DD",
	"YYYY-MM-DDThh:mm:ss",
	"YYYY-MM-DDThh:mm:ssZ",
	"YYYY-MM-DDThh:mm:ss.sss",
	"YYYY-DDD",
	"YYYYMMDD",
	"hh:mm",
	"hh:mm:ss",
}

// completeTemplates provides shell completion for compile operands.
func completeTemplates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, t := range commonTemplates {
		if strings.HasPrefix(t, toComplete) {
			matches = append(matches, t)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	compileCmd.ValidArgsFunction = completeTemplates
}
