package output

import (
	"bytes"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/muesli/termenv"
)

func TestNewStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	assert.NotZero(t, styles)
	assert.NotZero(t, styles.Output())
}

func TestStylesContainText(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	tests := []struct {
		name string
		fn   func(string) string
		text string
	}{
		{"Warning", styles.Warning, "120ms"},
		{"Account", styles.Account, "1910"},
		{"Tag", styles.Tag, "#VER"},
		{"Keyword", styles.Keyword, "check"},
		{"Dim", styles.Dim, "├─ "},
		{"Credit", func(s string) string { return styles.Amount(s, true) }, "-500.00"},
		{"Debit", func(s string) string { return styles.Amount(s, false) }, "500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.fn(tt.text), tt.text)
		})
	}
}

func TestStylesPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	assert.Equal(t, termenv.Ascii, styles.Output().Profile)
	assert.Equal(t, "#VER", styles.Tag("#VER"))
	assert.Equal(t, "-1", styles.Amount("-1", true))
}
