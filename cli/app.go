package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
)

// App is the root of the command line.
type App struct {
	Version kong.VersionFlag `help:"Show version information"`
	Commands
}

// BuildVersion combines Version and CommitSHA for display.
func BuildVersion() string {
	version := Version
	if version == "" {
		version = "dev"
	}
	if CommitSHA == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, CommitSHA)
}

// Execute parses args, runs the selected command and reports the outcome.
// Errors not already reported by the command are written to stderr.
func Execute(args []string, stdout, stderr io.Writer, opts ...kong.Option) CommandResult {
	var app App

	options := []kong.Option{
		kong.Vars{
			"version": BuildVersion(),
		},
		kong.Name("sie"),
		kong.Description("A SIE accounting file checker, formatter and converter."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Bind(&app.Globals),
	}
	parser, err := kong.New(&app, append(options, opts...)...)
	if err != nil {
		return resultOf(err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return CommandResult{ExitCode: ExitUsage, Err: err, Reported: true}
	}

	result := resultOf(ctx.Run())
	if result.Err != nil && !result.Reported {
		parser.Errorf("%s", result.Err)
		result.Reported = true
	}
	return result
}
