package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edi-tools/dtrex/internal/grammar"
	"github.com/edi-tools/dtrex/pkg/dtrex"
)

func TestParse_AcceptedTemplates(t *testing.T) {
	g := grammar.DateTime()

	tests := []struct {
		name     string
		template string
		rootKind grammar.Kind // kind of the committed top-level alternative
	}{
		{"bare year", "YYYY", grammar.KindYear},
		{"year month", "YYYY-MM", grammar.KindYearMonth},
		{"month based date", "YYYY-MM-DD", grammar.KindMonthBasedDate},
		{"month based date no separators", "YYYYMMDD", grammar.KindMonthBasedDate},
		{"day based date", "YYYY-DDD", grammar.KindDayBasedDate},
		{"day based date no dash", "YYYYDDD", grammar.KindDayBasedDate},
		{"full datetime", "YYYY-MM-DDThh:mm:ss", grammar.KindMonthBasedDateTime},
		{"full datetime zulu", "YYYY-MM-DDThh:mm:ssZ", grammar.KindMonthBasedDateTime},
		{"datetime space designator", "YYYY-MM-DD hh:mm", grammar.KindMonthBasedDateTime},
		{"compact datetime", "YYYYMMDDThh:mm:ssZ", grammar.KindMonthBasedDateTime},
		{"ordinal datetime fractional", "YYYY-DDDThh:mm:ss.sss", grammar.KindDayBasedDateTime},
		{"bare hours", "hh", grammar.KindTimeZ},
		{"hours minutes", "hh:mm", grammar.KindTimeZ},
		{"hours minutes seconds", "hh:mm:ss", grammar.KindTimeZ},
		{"time fractional", "hh:mm:ss.sss", grammar.KindTimeZ},
		{"time zulu", "hh:mm:ssZ", grammar.KindTimeZ},
		{"time positive offset", "hh:mm:ss+hh:mm", grammar.KindTimeZ},
		{"time negative offset hours only", "hh:mm:ss-hh", grammar.KindTimeZ},
		{"hours with offset", "hh+hh", grammar.KindTimeZ},
		{"datetime with offset", "YYYY-MM-DDThh:mm:ss.sss-hh:mm", grammar.KindMonthBasedDateTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(g, tt.template)
			require.NoError(t, err)
			require.Equal(t, grammar.KindValidDateTime, node.Kind)
			require.Equal(t, tt.template, node.Text)
			require.Len(t, node.Children, 1)
			require.Equal(t, tt.rootKind, node.Children[0].Kind)
		})
	}
}

func TestParse_RejectedTemplates(t *testing.T) {
	g := grammar.DateTime()

	tests := []struct {
		name     string
		template string
	}{
		{"empty", ""},
		{"unsupported separator", "YYYY/MM/DD"},
		{"two digit year", "YY"},
		{"lowercase year", "yyyy"},
		{"trailing garbage", "YYYY-MM-DDX"},
		{"bare month", "MM"},
		{"bare day of month", "DD"},
		{"bare fraction", ".sss"},
		{"fraction without seconds", "hh:mm.sss"},
		{"dangling offset sign", "hh:mm:ss+"},
		{"offset without time", "+hh:mm"},
		{"zulu before offset", "hh:mm:ssZ+hh"},
		{"double dash", "YYYY--MM"},
		{"time before date", "hh:mmTYYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(g, tt.template)
			require.Nil(t, node)
			require.Error(t, err)
			require.ErrorIs(t, err, dtrex.ErrSyntax)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			require.Equal(t, tt.template, syntaxErr.Template)
		})
	}
}

func TestParse_NoPartialMatches(t *testing.T) {
	// "YYYY" alone is accepted, so an alternative could silently match the
	// prefix of "YYYY/MM/DD"; full-input consumption must turn that into a
	// parse failure.
	g := grammar.DateTime()

	_, err := Parse(g, "YYYY/MM/DD")
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	require.Equal(t, 4, syntaxErr.Offset, "failure should point at the unsupported separator")
}

func TestParse_TreeShape(t *testing.T) {
	g := grammar.DateTime()

	node, err := Parse(g, "YYYY-MM-DD")
	require.NoError(t, err)

	date := node.Children[0]
	require.Equal(t, grammar.KindMonthBasedDate, date.Kind)
	require.Equal(t, "YYYY-MM-DD", date.Text)
	require.Len(t, date.Children, 5)

	kinds := make([]grammar.Kind, 0, 5)
	texts := make([]string, 0, 5)
	for _, child := range date.Children {
		kinds = append(kinds, child.Kind)
		texts = append(texts, child.Text)
		require.Empty(t, child.Children, "terminals have no children")
	}
	require.Equal(t, []grammar.Kind{
		grammar.KindYear,
		grammar.KindDateDash,
		grammar.KindMonth,
		grammar.KindDateDash,
		grammar.KindDayOfMonth,
	}, kinds)
	require.Equal(t, []string{"YYYY", "-", "MM", "-", "DD"}, texts)
}

func TestParse_OptionalSeparatorMatchesEmpty(t *testing.T) {
	g := grammar.DateTime()

	node, err := Parse(g, "YYYYMMDD")
	require.NoError(t, err)

	date := node.Children[0]
	require.Equal(t, grammar.KindMonthBasedDate, date.Kind)
	require.Equal(t, "", date.Children[1].Text, "omitted dash matches empty")
	require.Equal(t, "", date.Children[3].Text)
}

func TestParse_OrderedChoicePrefersLongerOffsetForm(t *testing.T) {
	// offset = offsetHoursMinutes / offsetHours: with ":mm" present the first
	// alternative must win and consume it.
	g := grammar.DateTime()

	node, err := Parse(g, "hh+hh:mm")
	require.NoError(t, err)

	timeZ := node.Children[0]
	require.Equal(t, grammar.KindTimeZ, timeZ.Kind)
	time := timeZ.Children[0]
	require.Equal(t, grammar.KindTimeNoMinutesWithOffset, time.Children[0].Kind)
}

func TestSyntaxError_Message(t *testing.T) {
	err := &SyntaxError{Template: "YYYY/MM/DD", Offset: 4}
	require.Contains(t, err.Error(), `"YYYY/MM/DD"`)
	require.Contains(t, err.Error(), "offset 4")
	require.ErrorIs(t, err, dtrex.ErrSyntax)
}

func TestSyntaxError_LongTemplateTruncated(t *testing.T) {
	template := ""
	for i := 0; i < 50; i++ {
		template += "YYYY"
	}
	err := &SyntaxError{Template: template}
	require.Contains(t, err.Error(), "...")
	require.Less(t, len(err.Error()), len(template))
}

func TestParse_Deterministic(t *testing.T) {
	g := grammar.DateTime()

	first, err := Parse(g, "YYYY-DDDThh:mm:ss.sss")
	require.NoError(t, err)
	second, err := Parse(g, "YYYY-DDDThh:mm:ss.sss")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
