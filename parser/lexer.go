package parser

// The tokenizer splits one physical line into whitespace separated fields.
//
// Grammar, applied left to right:
//   - space and tab separate fields outside quoted and brace spans
//   - '"' toggles a quoted span; the quotes are not part of the value
//   - '\' makes the next character literal; it is checked before the quote
//     toggle, so \" inside a quoted span does not close it
//   - '{' opens a brace span that runs to the matching '}'; everything in
//     between, whitespace, quotes and escapes included, is kept verbatim along
//     with the braces themselves. Braces inside a quoted object number do not
//     count towards the match
//   - a field that is empty after trimming is dropped unless it came from ""
//     or {}

import (
	"strings"
)

// SplitLine splits a line into its raw fields, the tag included.
func SplitLine(line string) []string {
	var (
		fields   []string
		buf      strings.Builder
		inQuote  bool
		escaped  bool
		objQuote bool // inside a quoted span within a brace span
		depth    int
		explicit bool // the current field came from "" or {}
	)

	flush := func() {
		value := strings.TrimSpace(buf.String())
		if value != "" || explicit {
			fields = append(fields, value)
		}
		buf.Reset()
		explicit = false
	}

	for _, c := range line {
		if depth > 0 {
			buf.WriteRune(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				objQuote = !objQuote
			case objQuote:
			case c == '{':
				depth++
			case c == '}':
				depth--
			}
			continue
		}

		if escaped {
			buf.WriteRune(c)
			escaped = false
			continue
		}

		switch {
		case c == '\\':
			escaped = true
		case c == '"':
			inQuote = !inQuote
			explicit = true
		case inQuote:
			buf.WriteRune(c)
		case c == '{':
			depth++
			explicit = true
			buf.WriteRune(c)
		case c == ' ' || c == '\t':
			flush()
		default:
			buf.WriteRune(c)
		}
	}
	flush()

	return fields
}

// Tokenize splits a line into a record. It returns nil for a line without
// any field.
func Tokenize(line string) *Record {
	fields := SplitLine(line)
	if len(fields) == 0 {
		return nil
	}
	return &Record{
		Tag:    fields[0],
		Fields: fields[1:],
		Raw:    line,
	}
}

// Quote renders a value as a field the tokenizer reads back unchanged.
// Backslashes and quotes are escaped and the value is always quoted.
func Quote(s string) string {
	var buf strings.Builder
	buf.Grow(len(s) + 2)
	buf.WriteByte('"')
	buf.WriteString(escapeString(s))
	buf.WriteByte('"')
	return buf.String()
}

// escapeString escapes the characters the tokenizer treats specially inside a
// quoted span.
func escapeString(s string) string {
	// Quick check if escaping is needed
	if !strings.ContainsAny(s, `"\`) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 4)
	for _, c := range s {
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String()
}
