// Package parser is a recursive-descent PEG engine over the template grammar.
// It either builds a parse tree for the whole input or fails with a
// SyntaxError; there are no partial matches.
package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/edi-tools/dtrex/internal/grammar"
	"github.com/edi-tools/dtrex/pkg/dtrex"
)

// Node is one successful rule match: the rule's Kind, the matched text span,
// and the ordered child nodes (empty for terminals; exactly one for a choice).
// A Node is exclusively owned by the parse call that produced it and is never
// mutated after construction.
type Node struct {
	Kind     grammar.Kind
	Text     string
	Children []*Node
}

// SyntaxError reports that a template matched no grammar alternative.
// Offset is the byte offset of the furthest position any alternative reached
// before failing, which usually points at the first unsupported character.
type SyntaxError struct {
	Template string
	Offset   int
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	template := e.Template
	if len(template) > dtrex.MaxTemplatePreviewLength {
		template = template[:dtrex.MaxTemplatePreviewLength] + "..."
	}
	return fmt.Sprintf("template %q: %v at offset %d", template, dtrex.ErrSyntax, e.Offset)
}

// Unwrap makes errors.Is(err, dtrex.ErrSyntax) work for callers.
func (e *SyntaxError) Unwrap() error {
	return dtrex.ErrSyntax
}

// state carries the input and the furthest failure position across one parse.
// Parses of distinct inputs share nothing but the read-only grammar.
type state struct {
	input    string
	furthest int
}

// Parse matches input against the grammar. The root rule must consume the
// entire input: a prefix match is a parse failure, not a partial success.
// Parsing is deterministic, so a failing template fails identically on every
// attempt; callers should not retry.
func Parse(g *grammar.Grammar, input string) (*Node, error) {
	st := &state{input: input}
	node, end, ok := st.match(g.Root, 0)
	if !ok || end != len(input) {
		return nil, &SyntaxError{Template: input, Offset: st.furthest}
	}
	return node, nil
}

// match attempts rule r at byte position pos and returns the node, the
// position after the match, and whether the rule matched.
func (st *state) match(r *grammar.Rule, pos int) (*Node, int, bool) {
	switch r.Op {
	case grammar.OpLiteral:
		end := pos + len(r.Text)
		if end <= len(st.input) && st.input[pos:end] == r.Text {
			return &Node{Kind: r.Kind, Text: r.Text}, end, true
		}
		st.fail(pos)
		return nil, pos, false

	case grammar.OpClass:
		if pos < len(st.input) {
			ch, width := utf8.DecodeRuneInString(st.input[pos:])
			if r.Class.Accepts(ch) {
				return &Node{Kind: r.Kind, Text: st.input[pos : pos+width]}, pos + width, true
			}
		}
		if r.Class.Optional {
			// zero-or-one: matching nothing is still a success
			return &Node{Kind: r.Kind}, pos, true
		}
		st.fail(pos)
		return nil, pos, false

	case grammar.OpSequence:
		children := make([]*Node, 0, len(r.Subs))
		cur := pos
		for _, sub := range r.Subs {
			child, next, ok := st.match(sub, cur)
			if !ok {
				return nil, pos, false
			}
			children = append(children, child)
			cur = next
		}
		return &Node{Kind: r.Kind, Text: st.input[pos:cur], Children: children}, cur, true

	case grammar.OpChoice:
		// Ordered choice: first success wins; a failed alternative backtracks
		// to pos before the next is tried.
		for _, sub := range r.Subs {
			if child, next, ok := st.match(sub, pos); ok {
				return &Node{Kind: r.Kind, Text: st.input[pos:next], Children: []*Node{child}}, next, true
			}
		}
		return nil, pos, false
	}

	// Unreachable with a well-formed grammar.
	st.fail(pos)
	return nil, pos, false
}

func (st *state) fail(pos int) {
	if pos > st.furthest {
		st.furthest = pos
	}
}
