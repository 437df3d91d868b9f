package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/sie/checksum"
	"github.com/robinvdvleuten/sie/output"
	"github.com/robinvdvleuten/sie/parser"
)

// DoctorCmd provides doctor utilities for debugging SIE files.
type DoctorCmd struct {
	Lex      LexCmd      `cmd:"" help:"Show the records the tokenizer reads from a SIE file."`
	Dump     DumpCmd     `cmd:"" help:"Dump the parsed ledger structure."`
	Checksum ChecksumCmd `cmd:"" help:"Recompute the #KSUMMA checksum of a SIE file."`
}

// LexCmd shows tokenized records from a SIE file.
type LexCmd struct {
	File FileOrStdin `help:"SIE input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the lex command.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	source := cmd.File.Source(globals.Encoding)
	if source == "" {
		return fmt.Errorf("failed to read %s", cmd.File.Filename)
	}

	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	width := 0
	var records []*parser.Record
	for i, line := range lines {
		rec := parser.Tokenize(line)
		if rec == nil {
			continue
		}
		rec.Line = i + 1
		records = append(records, rec)
		if n := runewidth.StringWidth(rec.Tag); n > width {
			width = n
		}
	}

	styles := output.NewStyles(ctx.Stdout)

	// Format: line tag "field" "field" ...
	for _, rec := range records {
		fields := make([]string, len(rec.Fields))
		for i, f := range rec.Fields {
			fields[i] = fmt.Sprintf("%q", f)
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%5d  %s  %s\n",
			rec.Line,
			styles.Tag(runewidth.FillRight(rec.Tag, width)),
			strings.Join(fields, " "))
	}

	return nil
}

// DumpCmd prints the parsed ledger as a Go value.
type DumpCmd struct {
	ParserFlags

	File FileOrStdin `help:"SIE input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	ldr, err := newLoader(globals, cmd.ParserFlags)
	if err != nil {
		return err
	}

	l, err := cmd.File.Load(context.Background(), ldr)
	if err != nil {
		renderer := NewErrorRenderer(cmd.File.Source(globals.Encoding))
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		return NewCommandError(ExitProblems)
	}

	repr.New(ctx.Stdout, repr.Indent("  "), repr.OmitEmpty(true)).Println(l)
	return nil
}

// ChecksumCmd recomputes the checksum of the records after the opening
// #KSUMMA and compares it with the declared total.
type ChecksumCmd struct {
	File FileOrStdin `help:"SIE input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the checksum command.
func (cmd *ChecksumCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	data, err := cmd.File.Bytes()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.File.Filename, err)
	}

	opts := []parser.Option{
		parser.WithFilename(cmd.File.Filename),
		parser.WithCollectErrors(),
		parser.WithAllowUnbalancedVoucher(),
		parser.WithIgnoreMissingDIM(),
	}
	if globals.Encoding != "" {
		opts = append(opts, parser.WithEncoding(globals.Encoding))
	}

	acc := checksum.New()
	var records int
	p := parser.New(opts...)
	p.Callbacks().Line.Subscribe(func(rec *parser.Record) {
		if rec.Tag != parser.TagChecksum {
			if acc.Started() {
				records++
			}
			acc.Add(rec.Tag, rec.Fields)
			return
		}
		if rec.Len() == 0 && !acc.Started() {
			acc.Start()
		}
	})

	l, _ := p.Parse(context.Background(), bytes.NewReader(data))
	if l == nil {
		printError(ctx.Stderr, "file rejected before it could be read")
		return NewCommandError(ExitProblems)
	}

	if !acc.Started() {
		printWarning(ctx.Stdout, "no #KSUMMA section")
		return nil
	}

	printInfof(ctx.Stdout, "%s covered", pluralize(records, "record"))
	printInfof(ctx.Stdout, "computed %d (unsigned %d)", acc.Value(), acc.Sum())

	if l.Checksum == 0 {
		printWarning(ctx.Stdout, "no total declared")
		return nil
	}
	if !acc.Matches(l.Checksum) {
		printError(ctx.Stdout, fmt.Sprintf("declared %d does not match", l.Checksum))
		return NewCommandError(ExitProblems)
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("declared %d matches", l.Checksum))
	return nil
}
