// Package loader reads and writes SIE files by name.
//
// It is the outbound surface of the codec: Load parses a named file into a
// ledger, ReadSieType sniffs the declared file type without a full parse and
// Save writes a ledger back to a named file. Parser and writer settings are
// passed through as functional options.
//
// Example usage:
//
//	ldr := loader.New(loader.WithParserOptions(parser.WithCollectErrors()))
//	l, err := ldr.Load(ctx, "bokslut.se")
//
//	// Write the ledger with a checksum section
//	ldr = loader.New(loader.WithChecksum())
//	err = ldr.Save(ctx, l, "kopia.se")
package loader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robinvdvleuten/sie/formatter"
	"github.com/robinvdvleuten/sie/ledger"
	"github.com/robinvdvleuten/sie/parser"
	"github.com/robinvdvleuten/sie/telemetry"
)

// Loader loads and saves SIE files.
//
// Configure the loader using functional options passed to New:
//
//	ldr := New(WithEncoding("utf-8"), WithChecksum())
type Loader struct {
	// ParserOptions are applied to every parse, before the filename and
	// encoding set by the loader itself.
	ParserOptions []parser.Option

	// Checksum makes Save write the checksum section.
	Checksum bool

	// Encoding names the file encoding for both directions. The default is
	// PC8.
	Encoding string

	// Subscribers attach handlers to the parser's callbacks before each
	// parse.
	Subscribers []func(*parser.Callbacks)
}

// Option configures a Loader.
type Option func(*Loader)

// WithParserOptions adds parser options.
func WithParserOptions(opts ...parser.Option) Option {
	return func(l *Loader) {
		l.ParserOptions = append(l.ParserOptions, opts...)
	}
}

// WithChecksum makes Save write the checksum section.
func WithChecksum() Option {
	return func(l *Loader) {
		l.Checksum = true
	}
}

// WithEncoding sets the file encoding by name.
func WithEncoding(name string) Option {
	return func(l *Loader) {
		l.Encoding = name
	}
}

// WithCallbacks registers fn to subscribe to the parser's callbacks. Combined
// with parser.WithStreamValues it lets a caller process vouchers and period
// values while the file is read.
func WithCallbacks(fn func(*parser.Callbacks)) Option {
	return func(l *Loader) {
		l.Subscribers = append(l.Subscribers, fn)
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses the named file. The file is decoded and parsed line by line
// as it is read.
//
// Errors from the parser are returned unchanged so callers can inspect them
// with errors.As. In collecting mode the ledger is returned together with a
// *parser.ValidationErrors.
func (l *Loader) Load(ctx context.Context, filename string) (*ledger.Ledger, error) {
	timer := telemetry.StartTimer(ctx, "loader.load "+filepath.Base(filename))
	defer timer.End()

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	defer func() { _ = f.Close() }()

	return l.parser(filename).Parse(ctx, f)
}

// LoadBytes parses data that was read from filename elsewhere, such as
// standard input. The filename is only used in error positions.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*ledger.Ledger, error) {
	timer := telemetry.StartTimer(ctx, "loader.load "+filepath.Base(filename))
	defer timer.End()

	return l.parser(filename).Parse(ctx, bytes.NewReader(data))
}

// parser returns a parser configured by the loader's options that reports
// positions in filename.
func (l *Loader) parser(filename string) *parser.Parser {
	opts := append([]parser.Option{}, l.ParserOptions...)
	opts = append(opts, parser.WithFilename(filename))
	if l.Encoding != "" {
		opts = append(opts, parser.WithEncoding(l.Encoding))
	}

	p := parser.New(opts...)
	for _, subscribe := range l.Subscribers {
		subscribe(p.Callbacks())
	}
	return p
}

// ReadSieType returns the file type declared by the named file, or 0 when it
// declares none before its first voucher.
func (l *Loader) ReadSieType(ctx context.Context, filename string) (int, error) {
	timer := telemetry.StartTimer(ctx, "loader.sniff "+filepath.Base(filename))
	defer timer.End()

	f, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer func() { _ = f.Close() }()

	t, err := parser.ReadSieType(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

// Save writes lg to the named file. The file is written to a temporary file
// in the same directory first and renamed into place, so a failed write
// leaves an existing file untouched.
func (l *Loader) Save(ctx context.Context, lg *ledger.Ledger, filename string) error {
	timer := telemetry.StartTimer(ctx, "loader.save "+filepath.Base(filename))
	defer timer.End()

	var buf bytes.Buffer
	if err := l.Formatter().Format(ctx, lg, &buf); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// Formatter returns the writer configured by the loader's options.
func (l *Loader) Formatter() *formatter.Formatter {
	var opts []formatter.Option
	if l.Checksum {
		opts = append(opts, formatter.WithChecksum())
	}
	if l.Encoding != "" {
		opts = append(opts, formatter.WithEncoding(l.Encoding))
	}
	return formatter.New(opts...)
}

// Load parses the named file with a default loader.
func Load(ctx context.Context, filename string, opts ...Option) (*ledger.Ledger, error) {
	return New(opts...).Load(ctx, filename)
}

// Save writes a ledger to the named file with a default loader.
func Save(ctx context.Context, lg *ledger.Ledger, filename string, opts ...Option) error {
	return New(opts...).Save(ctx, lg, filename)
}

// ReadSieType sniffs the file type of the named file.
func ReadSieType(ctx context.Context, filename string) (int, error) {
	return New().ReadSieType(ctx, filename)
}
