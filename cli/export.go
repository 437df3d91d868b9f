package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/sie/export"
)

type ExportCmd struct {
	ParserFlags

	File   FileOrStdin `help:"SIE input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Output string      `help:"Workbook to write (defaults to the input name with .xlsx)." short:"o" type:"path"`
}

func (cmd *ExportCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	target := cmd.Output
	if target == "" {
		if cmd.File.IsStdin() {
			return fmt.Errorf("--output is required when reading from stdin")
		}
		target = strings.TrimSuffix(cmd.File.Filename, filepath.Ext(cmd.File.Filename)) + ".xlsx"
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, fmt.Sprintf("export %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	ldr, err := newLoader(globals, cmd.ParserFlags)
	if err != nil {
		return err
	}

	l, err := cmd.File.Load(runCtx, ldr)
	if err != nil {
		renderer := NewErrorRenderer(cmd.File.Source(globals.Encoding))
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		return NewCommandError(ExitProblems)
	}

	f, err := export.Workbook(runCtx, l)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(target); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Exported %s to %s",
		pluralize(len(l.Vouchers), "voucher"), pathStyle.Render(target)))
	return nil
}
