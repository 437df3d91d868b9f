package cli

import (
	stdErrors "errors"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/sie/errors"
	"github.com/robinvdvleuten/sie/parser"
)

type CheckCmd struct {
	ParserFlags

	File   FileOrStdin `help:"SIE input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Output string      `help:"Error output format." enum:"text,json" default:"text" short:"o"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	ldr, err := newLoader(globals, cmd.ParserFlags, parser.WithCollectErrors())
	if err != nil {
		return err
	}

	l, err := cmd.File.Load(runCtx, ldr)
	if err == nil {
		printSuccess(ctx.Stdout, fmt.Sprintf("Check passed (%s, %s)",
			pluralize(len(l.Accounts), "account"),
			pluralize(len(l.Vouchers), "voucher")))
		return nil
	}

	var verrs *parser.ValidationErrors
	if !stdErrors.As(err, &verrs) {
		var perr *parser.ParseError
		if !stdErrors.As(err, &perr) {
			return err
		}
		verrs = &parser.ValidationErrors{Errors: []error{perr}}
	}

	if cmd.Output == "json" {
		_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().FormatAll(verrs.Errors))
	} else {
		renderer := NewErrorRenderer(cmd.File.Source(globals.Encoding))
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(verrs.Errors))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%s found", pluralize(len(verrs.Errors), "error")))
	}

	if l == nil {
		printWarning(ctx.Stderr, "file rejected before it could be read")
	}

	reportTelemetry()
	return NewCommandError(ExitProblems)
}
