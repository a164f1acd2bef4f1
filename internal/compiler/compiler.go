// Package compiler binds the grammar, parser, and translator into the
// dtrex.Compiler implementation used by the CLI and the batch processor.
package compiler

import (
	"github.com/edi-tools/dtrex/internal/grammar"
	"github.com/edi-tools/dtrex/internal/parser"
	"github.com/edi-tools/dtrex/internal/translate"
	"github.com/edi-tools/dtrex/pkg/dtrex"
)

// Compiler compiles datetime format templates into anchored regexes.
// It holds the immutable grammar value, constructed once in New and shared
// read-only by every Compile call, so a single Compiler is safe for
// concurrent use.
type Compiler struct {
	grammar *grammar.Grammar
}

var _ dtrex.Compiler = (*Compiler)(nil)

// New constructs a Compiler with the datetime template grammar.
func New() *Compiler {
	return &Compiler{grammar: grammar.DateTime()}
}

// Compile parses the template and translates the parse tree into an anchored
// regex. The parse tree is discarded once translated; per-call state is owned
// entirely by this call.
func (c *Compiler) Compile(template string) (string, error) {
	tree, err := parser.Parse(c.grammar, template)
	if err != nil {
		return "", err
	}
	return translate.Regex(tree), nil
}
