package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/sie/compare"
	"github.com/robinvdvleuten/sie/telemetry"
)

type DiffCmd struct {
	ParserFlags

	A string `help:"First SIE file." arg:"" type:"existingfile"`
	B string `help:"Second SIE file." arg:"" type:"existingfile"`
}

func (cmd *DiffCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := startTelemetry(ctx, globals, "diff")
	defer reportTelemetry()

	ldr, err := newLoader(globals, cmd.ParserFlags)
	if err != nil {
		return err
	}

	a, err := ldr.Load(runCtx, cmd.A)
	if err != nil {
		return err
	}
	b, err := ldr.Load(runCtx, cmd.B)
	if err != nil {
		return err
	}

	timer := telemetry.StartTimer(runCtx, "compare")
	diffs, err := compare.Compare(a, b)
	timer.End()
	if err != nil {
		return err
	}

	if len(diffs) == 0 {
		printSuccess(ctx.Stdout, "Files are equivalent")
		return nil
	}

	for _, d := range diffs {
		_, _ = fmt.Fprintln(ctx.Stdout, d)
	}
	_, _ = fmt.Fprintln(ctx.Stdout)
	printError(ctx.Stderr, fmt.Sprintf("%s found", pluralize(len(diffs), "difference")))

	reportTelemetry()
	return NewCommandError(ExitProblems)
}
