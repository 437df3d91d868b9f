// Package sie reads, writes and compares SIE accounting files.
//
// The functions here cover the common cases; the parser, formatter, loader
// and compare packages expose the full set of options.
//
// Example usage:
//
//	l, err := sie.Load(ctx, "bokslut.se")
//	if err != nil {
//		return err
//	}
//	fmt.Println(l.Company.Name)
//
//	// Write a copy with a checksum section
//	err = sie.Save(ctx, l, "kopia.se", loader.WithChecksum())
package sie

import (
	"context"
	"io"

	"github.com/robinvdvleuten/sie/compare"
	"github.com/robinvdvleuten/sie/formatter"
	"github.com/robinvdvleuten/sie/ledger"
	"github.com/robinvdvleuten/sie/loader"
	"github.com/robinvdvleuten/sie/parser"
)

// Parse reads a SIE file from r.
func Parse(ctx context.Context, r io.Reader, opts ...parser.Option) (*ledger.Ledger, error) {
	return parser.New(opts...).Parse(ctx, r)
}

// ParseString parses decoded SIE text.
func ParseString(ctx context.Context, s string, opts ...parser.Option) (*ledger.Ledger, error) {
	return parser.ParseString(ctx, s, opts...)
}

// Load parses the named file.
func Load(ctx context.Context, filename string, opts ...loader.Option) (*ledger.Ledger, error) {
	return loader.Load(ctx, filename, opts...)
}

// Save writes l to the named file.
func Save(ctx context.Context, l *ledger.Ledger, filename string, opts ...loader.Option) error {
	return loader.Save(ctx, l, filename, opts...)
}

// Write writes l to w.
func Write(ctx context.Context, l *ledger.Ledger, w io.Writer, opts ...formatter.Option) error {
	return formatter.New(opts...).Format(ctx, l, w)
}

// Compare lists the differences between two ledgers. An empty result means
// they are equivalent.
func Compare(a, b *ledger.Ledger) ([]string, error) {
	return compare.Compare(a, b)
}
