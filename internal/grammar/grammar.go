// Package grammar holds the static parsing-expression grammar for datetime
// format templates. The grammar is a declarative, immutable value: construct
// it once with DateTime() and share it read-only across any number of parses.
package grammar

import "unicode"

// Kind tags every grammar rule and every parse node produced from it.
// Translation is a structural match over Kind; there is no string-keyed
// dispatch anywhere in the pipeline.
type Kind int

const (
	KindValidDateTime Kind = iota
	KindMonthBasedDateTime
	KindDayBasedDateTime
	KindMonthBasedDate
	KindDayBasedDate
	KindYearMonth
	KindTimeWithOffset
	KindTimeNoOffset
	KindTimeNoSecondsWithOffset
	KindTimeNoSecondsNoOffset
	KindTimeNoMinutesWithOffset
	KindTimeNoMinutesNoOffset
	KindTime
	KindTimeZ
	KindYear
	KindMonth
	KindDayOfMonth
	KindDayOfYear
	KindHours
	KindMinutes
	KindWholeSeconds
	KindFractionalSeconds
	KindSecondsWithFraction
	KindSecondsWithoutFraction
	KindSeconds
	KindDateDash
	KindTimeColon
	KindTimeDesignator
	KindZuluDesignator
	KindOffsetOperator
	KindOffset
	KindOffsetHours
	KindOffsetHoursMinutes
)

var kindNames = map[Kind]string{
	KindValidDateTime:           "validDateTime",
	KindMonthBasedDateTime:      "monthBasedDateTime",
	KindDayBasedDateTime:        "dayBasedDateTime",
	KindMonthBasedDate:          "monthBasedDate",
	KindDayBasedDate:            "dayBasedDate",
	KindYearMonth:               "yearMonth",
	KindTimeWithOffset:          "timeWithOffset",
	KindTimeNoOffset:            "timeNoOffset",
	KindTimeNoSecondsWithOffset: "timeNoSecondsWithOffset",
	KindTimeNoSecondsNoOffset:   "timeNoSecondsNoOffset",
	KindTimeNoMinutesWithOffset: "timeNoMinutesWithOffset",
	KindTimeNoMinutesNoOffset:   "timeNoMinutesNoOffset",
	KindTime:                    "time",
	KindTimeZ:                   "timeZ",
	KindYear:                    "year",
	KindMonth:                   "month",
	KindDayOfMonth:              "dayOfMonth",
	KindDayOfYear:               "dayOfYear",
	KindHours:                   "hours",
	KindMinutes:                 "minutes",
	KindWholeSeconds:            "wholeSeconds",
	KindFractionalSeconds:       "fractionalSeconds",
	KindSecondsWithFraction:     "secondsWithFraction",
	KindSecondsWithoutFraction:  "secondsWithOutFraction",
	KindSeconds:                 "seconds",
	KindDateDash:                "dateDash",
	KindTimeColon:               "timeColon",
	KindTimeDesignator:          "T",
	KindZuluDesignator:          "Z",
	KindOffsetOperator:          "offsetOperator",
	KindOffset:                  "offset",
	KindOffsetHours:             "offsetHours",
	KindOffsetHoursMinutes:      "offsetHoursMinutes",
}

// String returns the rule name as it appears in the grammar definition.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Op identifies the combinator a rule is built from.
type Op int

const (
	// OpSequence matches every sub-rule in order.
	OpSequence Op = iota
	// OpChoice is PEG ordered choice: sub-rules are tried left to right and
	// the first success wins.
	OpChoice
	// OpLiteral matches an exact text.
	OpLiteral
	// OpClass matches a single character from a character set, optionally
	// matching nothing at all.
	OpClass
)

// Class is a single-character terminal. Chars lists the accepted characters;
// Whitespace additionally accepts any Unicode whitespace rune (the time
// designator accepts a space in place of 'T'). When Optional is set the class
// matches zero or one character and never fails.
type Class struct {
	Chars      string
	Whitespace bool
	Optional   bool
}

// Rule is one grammar rule: a Kind tag plus a combinator. Rules form a finite
// DAG with no left recursion; shared sub-rules (year, hours, ...) appear under
// several parents. Rules are never mutated after DateTime() returns.
type Rule struct {
	Kind  Kind
	Op    Op
	Text  string  // OpLiteral: exact text to match
	Class *Class  // OpClass: character set
	Subs  []*Rule // OpSequence, OpChoice: ordered sub-rules
}

// Grammar is the complete template grammar. Root is an ordered choice over
// whole-string alternatives; the parser requires Root to consume the entire
// input, so no alternative can silently match a prefix.
type Grammar struct {
	Root *Rule
}

func lit(kind Kind, text string) *Rule {
	return &Rule{Kind: kind, Op: OpLiteral, Text: text}
}

func class(kind Kind, c Class) *Rule {
	cc := c
	return &Rule{Kind: kind, Op: OpClass, Class: &cc}
}

func seq(kind Kind, subs ...*Rule) *Rule {
	return &Rule{Kind: kind, Op: OpSequence, Subs: subs}
}

func choice(kind Kind, subs ...*Rule) *Rule {
	return &Rule{Kind: kind, Op: OpChoice, Subs: subs}
}

// DateTime constructs the datetime format-template grammar.
//
// The alternative order of every choice is load-bearing and must not be
// reordered: ordered choice commits to the first matching alternative, so the
// longer forms are listed before their prefixes (timeWithOffset before
// timeNoOffset, offsetHoursMinutes before offsetHours, yearMonth before year).
//
//	validDateTime  = monthBasedDateTime / dayBasedDateTime / monthBasedDate
//	                 / dayBasedDate / yearMonth / year / timeZ
//	monthBasedDateTime = monthBasedDate T time Z
//	dayBasedDateTime   = dayBasedDate T time Z
//	monthBasedDate = year dateDash month dateDash dayOfMonth
//	dayBasedDate   = year dateDash dayOfYear
//	yearMonth      = year dateDash month
//	time = timeWithOffset / timeNoOffset / timeNoSecondsWithOffset
//	       / timeNoSecondsNoOffset / timeNoMinutesWithOffset
//	       / timeNoMinutesNoOffset
//	timeZ   = time Z
//	seconds = secondsWithFraction / secondsWithOutFraction
//	offset  = offsetHoursMinutes / offsetHours
//
// Every separator and marker (dateDash, timeColon, T, Z) is a zero-or-one
// terminal: a conforming template may omit it. The offset sign is the one
// required single-character terminal.
func DateTime() *Grammar {
	year := lit(KindYear, "YYYY")
	month := lit(KindMonth, "MM")
	dayOfMonth := lit(KindDayOfMonth, "DD")
	dayOfYear := lit(KindDayOfYear, "DDD")
	hours := lit(KindHours, "hh")
	minutes := lit(KindMinutes, "mm")
	wholeSeconds := lit(KindWholeSeconds, "ss")
	fractionalSeconds := lit(KindFractionalSeconds, ".sss")

	dateDash := class(KindDateDash, Class{Chars: "-", Optional: true})
	timeColon := class(KindTimeColon, Class{Chars: ":", Optional: true})
	timeDesignator := class(KindTimeDesignator, Class{Chars: "T", Whitespace: true, Optional: true})
	zuluDesignator := class(KindZuluDesignator, Class{Chars: "Z", Optional: true})
	offsetOperator := class(KindOffsetOperator, Class{Chars: "+-"})

	secondsWithFraction := seq(KindSecondsWithFraction, wholeSeconds, fractionalSeconds)
	secondsWithoutFraction := seq(KindSecondsWithoutFraction, wholeSeconds)
	seconds := choice(KindSeconds, secondsWithFraction, secondsWithoutFraction)

	offsetHours := seq(KindOffsetHours, offsetOperator, hours)
	offsetHoursMinutes := seq(KindOffsetHoursMinutes, offsetOperator, hours, timeColon, minutes)
	offset := choice(KindOffset, offsetHoursMinutes, offsetHours)

	timeWithOffset := seq(KindTimeWithOffset, hours, timeColon, minutes, timeColon, seconds, offset)
	timeNoOffset := seq(KindTimeNoOffset, hours, timeColon, minutes, timeColon, seconds)
	timeNoSecondsWithOffset := seq(KindTimeNoSecondsWithOffset, hours, timeColon, minutes, offset)
	timeNoSecondsNoOffset := seq(KindTimeNoSecondsNoOffset, hours, timeColon, minutes)
	timeNoMinutesWithOffset := seq(KindTimeNoMinutesWithOffset, hours, offset)
	timeNoMinutesNoOffset := seq(KindTimeNoMinutesNoOffset, hours)
	time := choice(KindTime,
		timeWithOffset,
		timeNoOffset,
		timeNoSecondsWithOffset,
		timeNoSecondsNoOffset,
		timeNoMinutesWithOffset,
		timeNoMinutesNoOffset,
	)
	timeZ := seq(KindTimeZ, time, zuluDesignator)

	monthBasedDate := seq(KindMonthBasedDate, year, dateDash, month, dateDash, dayOfMonth)
	dayBasedDate := seq(KindDayBasedDate, year, dateDash, dayOfYear)
	yearMonth := seq(KindYearMonth, year, dateDash, month)

	monthBasedDateTime := seq(KindMonthBasedDateTime, monthBasedDate, timeDesignator, time, zuluDesignator)
	dayBasedDateTime := seq(KindDayBasedDateTime, dayBasedDate, timeDesignator, time, zuluDesignator)

	root := choice(KindValidDateTime,
		monthBasedDateTime,
		dayBasedDateTime,
		monthBasedDate,
		dayBasedDate,
		yearMonth,
		year,
		timeZ,
	)

	return &Grammar{Root: root}
}

// Accepts reports whether the class accepts the rune.
func (c *Class) Accepts(r rune) bool {
	for _, ch := range c.Chars {
		if ch == r {
			return true
		}
	}
	return c.Whitespace && unicode.IsSpace(r)
}
