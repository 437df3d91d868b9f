package cli

import (
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"
)

type FormatCmd struct {
	ParserFlags

	File     FileOrStdin `help:"SIE input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Checksum bool        `help:"Add a #KSUMMA checksum section."`
	Write    bool        `help:"Write the result back to the input file instead of stdout." short:"w"`
	Yes      bool        `help:"Overwrite without asking for confirmation." short:"y"`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}
	if cmd.Write && cmd.File.IsStdin() {
		return fmt.Errorf("--write needs a file, not stdin")
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, fmt.Sprintf("format %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	ldr, err := newLoader(globals, cmd.ParserFlags)
	if err != nil {
		return err
	}
	if cmd.Checksum {
		ldr.Checksum = true
	}

	l, err := cmd.File.Load(runCtx, ldr)
	if err != nil {
		renderer := NewErrorRenderer(cmd.File.Source(globals.Encoding))
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "parse error")
		reportTelemetry()
		return NewCommandError(ExitProblems)
	}

	if !cmd.Write {
		return ldr.Formatter().Format(runCtx, l, ctx.Stdout)
	}

	if !cmd.Yes {
		confirmed, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.File.Filename))
		if err != nil {
			return err
		}
		if !confirmed {
			printWarning(ctx.Stderr, "not written, pass --yes to overwrite without a terminal")
			return NewCommandError(ExitProblems)
		}
	}

	if err := ldr.Save(runCtx, l, cmd.File.Filename); err != nil {
		return err
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Wrote %s", pathStyle.Render(cmd.File.Filename)))
	return nil
}
