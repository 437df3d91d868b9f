// Package parser reads SIE files into a ledger.
//
// A file is read line by line. Every line is tokenized into a Record and
// dispatched on its tag. Vouchers are staged between their #VER record and
// the closing brace of their row block, and are balance checked when closed.
// Once the input ends the parser checks the records every file must carry.
//
// Problems are reported through the Error callback. By default the first
// problem stops the parse and is returned as a *ParseError; with
// WithCollectErrors the parse continues and all problems are returned
// together as *ValidationErrors.
//
// Example usage:
//
//	p := parser.New(parser.WithFilename("bokslut.se"))
//	p.Callbacks().Voucher.Subscribe(func(v *ledger.Voucher) {
//		fmt.Println(v.Series, v.Number)
//	})
//	l, err := p.Parse(ctx, f)
package parser

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/robinvdvleuten/sie/charset"
	"github.com/robinvdvleuten/sie/checksum"
	"github.com/robinvdvleuten/sie/ledger"
	"github.com/robinvdvleuten/sie/telemetry"
)

// LineSource yields decoded lines without their terminators, returning
// io.EOF at the end.
type LineSource interface {
	ReadLine() (string, error)
}

type state int

const (
	stateAwaitingFirstLine state = iota
	stateStreaming
	stateInVoucher
	stateDone
)

// Parser reads one file at a time. Callbacks survive between files; all other
// state is reset at the start of each parse.
type Parser struct {
	opts      Options
	callbacks Callbacks

	ledger   *ledger.Ledger
	state    state
	voucher  *ledger.Voucher
	vpos     Position
	checksum *checksum.Accumulator
	interner *Interner
	seen     map[string]int
	line     int
	records  int

	errs  []error
	fatal error
	abort bool
}

// New creates a parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(&p.opts)
	}
	return p
}

// Callbacks returns the events fired while parsing. Subscribe before calling
// Parse.
func (p *Parser) Callbacks() *Callbacks {
	return &p.callbacks
}

// Options returns the parser's settings.
func (p *Parser) Options() Options {
	return p.opts
}

// Errors returns the problems recorded by the last parse in collecting mode.
func (p *Parser) Errors() []error {
	return p.errs
}

// Parse decodes r with the configured encoding and parses it.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*ledger.Ledger, error) {
	enc, err := p.opts.encoding()
	if err != nil {
		return nil, err
	}
	return p.ParseLines(ctx, charset.NewReader(r, enc))
}

// ParseLines parses lines from src.
//
// In the default mode the first problem stops the parse and is returned as a
// *ParseError with a nil ledger. In collecting mode the ledger is returned
// with a *ValidationErrors holding every problem, or nil when there were
// none. A file that fails the first record check or declares a file type
// outside the accepted set never yields a ledger.
func (p *Parser) ParseLines(ctx context.Context, src LineSource) (*ledger.Ledger, error) {
	timer := telemetry.StartTimer(ctx, "parser.parse")
	defer timer.End()

	p.reset()

	for p.state != stateDone {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		p.line++

		if strings.TrimSpace(line) == "" {
			continue
		}

		rec := Tokenize(line)
		rec.Line = p.line
		rec.Tag = p.interner.Intern(rec.Tag)
		p.records++

		p.callbacks.Line.Fire(rec)
		p.handle(rec)

		if p.abort || p.fatal != nil {
			break
		}
	}

	timer.Count(p.records, "records")

	if !p.abort && p.fatal == nil {
		if p.state == stateAwaitingFirstLine {
			p.fail(&InvalidFileError{Pos: p.pos(), Reason: "no #FLAGGA record"})
		} else {
			p.finish()
		}
	}

	return p.result()
}

func (p *Parser) reset() {
	p.ledger = ledger.New()
	p.state = stateAwaitingFirstLine
	p.voucher = nil
	p.checksum = checksum.New()
	if p.interner == nil {
		p.interner = NewInterner(1024)
	} else {
		p.interner.Reset()
	}
	p.seen = make(map[string]int)
	p.line = 0
	p.records = 0
	p.errs = nil
	p.fatal = nil
	p.abort = false
}

func (p *Parser) result() (*ledger.Ledger, error) {
	switch {
	case p.abort && p.opts.CollectErrors:
		return nil, &ValidationErrors{Errors: p.errs}
	case p.fatal != nil:
		return nil, newParseError(p.fatal)
	case len(p.errs) > 0:
		return p.ledger, &ValidationErrors{Errors: p.errs}
	}
	return p.ledger, nil
}

// pos returns the position of the current line.
func (p *Parser) pos() Position {
	return Position{Filename: p.opts.Filename, Line: p.line}
}

// report funnels a problem through the Error callback and either records it
// or stops the parse.
func (p *Parser) report(err error) {
	if p.fatal != nil {
		return
	}
	p.callbacks.Error.Fire(err)
	if p.opts.CollectErrors {
		p.errs = append(p.errs, err)
		return
	}
	p.fatal = err
}

// fail reports a problem that stops the parse in either mode.
func (p *Parser) fail(err error) {
	p.report(err)
	if p.fatal == nil {
		p.fatal = err
	}
	p.abort = true
}

// ParseBytes parses a complete file held in memory.
func ParseBytes(ctx context.Context, data []byte, opts ...Option) (*ledger.Ledger, error) {
	return New(opts...).Parse(ctx, bytes.NewReader(data))
}

// ParseString parses a complete file held in a string. The string is taken
// as already decoded text.
func ParseString(ctx context.Context, s string, opts ...Option) (*ledger.Ledger, error) {
	return New(opts...).ParseLines(ctx, &stringSource{lines: strings.Split(s, "\n")})
}

type stringSource struct {
	lines []string
	i     int
}

func (s *stringSource) ReadLine() (string, error) {
	if s.i >= len(s.lines) {
		return "", io.EOF
	}
	line := strings.TrimSuffix(s.lines[s.i], "\r")
	s.i++
	return line, nil
}
