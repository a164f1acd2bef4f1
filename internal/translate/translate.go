// Package translate performs bottom-up semantic translation of a parse tree
// into a regular expression. Each rule kind has exactly one pure translation:
// terminals emit fixed regex atoms, composites concatenate their children's
// fragments, and the root wraps the result in ^ and $ anchors.
package translate

import (
	"strings"

	"github.com/edi-tools/dtrex/internal/grammar"
	"github.com/edi-tools/dtrex/internal/parser"
)

// Terminal atoms. These are reproduced byte-for-byte from the reference
// vocabulary, including its known over-approximations: hours accepts the
// out-of-range end-of-day value 24, and dayOfYear accepts 000-399 where the
// intended range is 001-366 (it is also the one atom without a capture
// group). Validation of concrete datetime values against a month's length or
// a year's day count is a calendar problem the regex deliberately does not
// solve. Do not tighten these without revisiting every downstream consumer.
const (
	atomYear              = `(\d\d\d\d)`
	atomMonth             = `(01|02|03|04|05|06|07|08|09|10|11|12)`
	atomDayOfMonth        = `(0[1-9]|[1-2]\d|30|31)`
	atomDayOfYear         = `[0-3]\d\d`
	atomHours             = `([0-1]\d|2[0-4])`
	atomMinutes           = `([0-5]\d)`
	atomWholeSeconds      = `([0-5]\d)`
	atomFractionalSeconds = `(\.\d\d\d)`
)

// Regex translates a parse tree into an anchored regular expression.
// Translation is deterministic: the same tree always yields byte-identical
// output. The root fragment is wrapped in ^ and $, so the derived regex can
// never produce a substring match.
func Regex(root *parser.Node) string {
	return fragment(root)
}

// fragment translates one node into its regex fragment, consuming the
// already-translated fragments of its children.
func fragment(n *parser.Node) string {
	switch n.Kind {
	case grammar.KindValidDateTime:
		return "^" + join(n.Children) + "$"

	case grammar.KindYear:
		return atomYear
	case grammar.KindMonth:
		return atomMonth
	case grammar.KindDayOfMonth:
		return atomDayOfMonth
	case grammar.KindDayOfYear:
		return atomDayOfYear
	case grammar.KindHours:
		return atomHours
	case grammar.KindMinutes:
		return atomMinutes
	case grammar.KindWholeSeconds:
		return atomWholeSeconds
	case grammar.KindFractionalSeconds:
		return atomFractionalSeconds

	case grammar.KindOffsetOperator:
		// The sign is a regex metacharacter ('+') or a range operator inside
		// classes ('-'); both are emitted escaped.
		return `\` + n.Text

	case grammar.KindZuluDesignator:
		// A trailing Z in the template is advisory: a conforming instance may
		// omit the UTC marker, so a matched Z compiles to an optional one.
		if n.Text == "" {
			return ""
		}
		return n.Text + "?"

	case grammar.KindDateDash, grammar.KindTimeColon, grammar.KindTimeDesignator:
		// Optionality was already resolved at parse time: the matched text is
		// either the literal separator or empty, and is emitted as-is.
		return n.Text

	default:
		return join(n.Children)
	}
}

func join(children []*parser.Node) string {
	var b strings.Builder
	for _, child := range children {
		b.WriteString(fragment(child))
	}
	return b.String()
}
