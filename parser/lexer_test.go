package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "QuotedName",
			input: `#KONTO 1910 "Kassa"`,
			want:  []string{"#KONTO", "1910", "Kassa"},
		},
		{
			name:  "ObjectListKeptVerbatim",
			input: `#TRANS 1910 {1 "100" 6 "P1"} 500 20200101 "Text"`,
			want:  []string{"#TRANS", "1910", `{1 "100" 6 "P1"}`, "500", "20200101", "Text"},
		},
		{
			name:  "EmptyObjectList",
			input: `#TRANS 1910 {} -500.00`,
			want:  []string{"#TRANS", "1910", "{}", "-500.00"},
		},
		{
			name:  "ExplicitEmptyField",
			input: `#VER A 1 20200101 "" 20200102`,
			want:  []string{"#VER", "A", "1", "20200101", "", "20200102"},
		},
		{
			name:  "QuotedSpansWhitespace",
			input: `#FNAMN "Aktiebolaget  Exempel"`,
			want:  []string{"#FNAMN", "Aktiebolaget  Exempel"},
		},
		{
			name:  "EscapedQuoteDoesNotCloseSpan",
			input: `#PROSA "Say \"hi\" twice"`,
			want:  []string{"#PROSA", `Say "hi" twice`},
		},
		{
			name:  "EscapedBackslash",
			input: `#PROSA "C:\\temp"`,
			want:  []string{"#PROSA", `C:\temp`},
		},
		{
			name:  "RunsOfWhitespace",
			input: "#IB 0   1910 \t 1000.00  ",
			want:  []string{"#IB", "0", "1910", "1000.00"},
		},
		{
			name:  "BraceInsideQuotes",
			input: `#VER A 1 20200101 "Text {x}"`,
			want:  []string{"#VER", "A", "1", "20200101", "Text {x}"},
		},
		{
			name:  "QuotedBraceInObjectList",
			input: `#OIB 0 1910 {6 "P}1"} 100.00`,
			want:  []string{"#OIB", "0", "1910", `{6 "P}1"}`, "100.00"},
		},
		{
			name:  "EscapedQuoteInObjectList",
			input: `#OIB 0 1910 {6 "a\"}"} 1`,
			want:  []string{"#OIB", "0", "1910", `{6 "a\"}"}`, "1"},
		},
		{
			name:  "NestedBraces",
			input: `#X {a {b c} d} e`,
			want:  []string{"#X", "{a {b c} d}", "e"},
		},
		{
			name:  "BlockOpen",
			input: "{",
			want:  []string{"{"},
		},
		{
			name:  "BlockClose",
			input: "}",
			want:  []string{"}"},
		},
		{
			name:  "Blank",
			input: " \t ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLine(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	rec := Tokenize(`#KONTO 1910 "Kassa"`)
	assert.Equal(t, "#KONTO", rec.Tag)
	assert.Equal(t, []string{"1910", "Kassa"}, rec.Fields)
	assert.Equal(t, `#KONTO 1910 "Kassa"`, rec.Raw)

	assert.Zero(t, Tokenize("   "))
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, s := range []string{
		"Kassa",
		`Bolaget "Exempel" AB`,
		`C:\temp\`,
		"",
		"with {braces}",
		`trailing backslash \`,
	} {
		t.Run(s, func(t *testing.T) {
			fields := SplitLine("#PROSA " + Quote(s))
			assert.Equal(t, []string{"#PROSA", s}, fields)
		})
	}
}

func TestEscapeString(t *testing.T) {
	assert.Equal(t, "plain", escapeString("plain"))
	assert.Equal(t, `a\"b`, escapeString(`a"b`))
	assert.Equal(t, `a\\b`, escapeString(`a\b`))
}
