package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/sie/ledger"
)

// Record is one tokenized line: its tag and the fields that follow it.
type Record struct {
	Tag    string
	Fields []string
	Raw    string
	Line   int // Line number (1-indexed)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.Fields)
}

// Has reports whether field i is present.
func (r *Record) Has(i int) bool {
	return i >= 0 && i < len(r.Fields)
}

// String returns field i, or "" when it is missing.
func (r *Record) String(i int) string {
	if !r.Has(i) {
		return ""
	}
	return strings.TrimSpace(r.Fields[i])
}

// Strings returns the fields from i on.
func (r *Record) Strings(i int) []string {
	if !r.Has(i) {
		return nil
	}
	out := make([]string, 0, len(r.Fields)-i)
	for _, f := range r.Fields[i:] {
		out = append(out, strings.TrimSpace(f))
	}
	return out
}

// Int returns field i as an int. A missing or empty field is 0.
func (r *Record) Int(i int) (int, error) {
	s := r.String(i)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &InvalidValueError{Value: s, Kind: "integer"}
	}
	return n, nil
}

// Long returns field i as an int64. A missing or empty field is 0.
func (r *Record) Long(i int) (int64, error) {
	s := r.String(i)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &InvalidValueError{Value: s, Kind: "integer"}
	}
	return n, nil
}

// Decimal returns field i as a decimal. A missing or empty field is zero.
func (r *Record) Decimal(i int) (decimal.Decimal, error) {
	s := r.String(i)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InvalidValueError{Value: s, Kind: "amount"}
	}
	return d, nil
}

// Date returns field i as a date. A missing or empty field is a nil date.
func (r *Record) Date(i int) (*ledger.Date, error) {
	return ledger.ParseDate(r.String(i))
}

// ObjectOffset returns 1 when the raw line contains an object list marker and
// 0 otherwise. Every positional field after the object list position is
// shifted by this offset.
//
// The test looks at the whole raw line, so a '{' inside a quoted text also
// counts.
func (r *Record) ObjectOffset() int {
	if strings.Contains(r.Raw, "{") {
		return 1
	}
	return 0
}

// HasEmptyObjects reports whether the raw line contains the empty object list
// marker.
func (r *Record) HasEmptyObjects() bool {
	return strings.Contains(r.Raw, "{}")
}

// ObjectField returns the index of the first field that holds an object list.
func (r *Record) ObjectField() (int, bool) {
	for i, f := range r.Fields {
		if strings.HasPrefix(strings.TrimSpace(f), "{") {
			return i, true
		}
	}
	return -1, false
}

// ParseObjects splits the interior of an object list field into references.
// The field holds alternating dimension and object numbers, optionally
// quoted. An object for a dimension that already appeared is dropped.
func ParseObjects(field string) ([]ledger.ObjectRef, error) {
	inner := strings.TrimSpace(field)
	inner = strings.TrimPrefix(inner, "{")
	inner = strings.TrimSuffix(inner, "}")

	parts := SplitLine(inner)
	if len(parts)%2 != 0 {
		return nil, fmt.Errorf("object list %q has a dimension without an object", field)
	}

	refs := make([]ledger.ObjectRef, 0, len(parts)/2)
	seen := make(map[string]bool, len(parts)/2)
	for i := 0; i < len(parts); i += 2 {
		dim := parts[i]
		if seen[dim] {
			continue
		}
		seen[dim] = true
		refs = append(refs, ledger.ObjectRef{Dimension: dim, Number: parts[i+1]})
	}
	return refs, nil
}
