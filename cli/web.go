package cli

import (
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/sie/web"
)

type WebCmd struct {
	ParserFlags

	File     string `help:"SIE file to serve." arg:"" type:"existingfile"`
	Port     int    `help:"Port to listen on." default:"8080"`
	Watch    bool   `help:"Reload the file when it changes on disk." default:"true" negatable:""`
	ReadOnly bool   `help:"Enable read-only mode (no write operations allowed)." short:"r"`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := startTelemetry(ctx, globals, "web")
	defer reportTelemetry()

	file, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	ldr, err := newLoader(globals, cmd.ParserFlags)
	if err != nil {
		return err
	}

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	server := web.NewWithVersion(cmd.Port, file, version, commitSHA)
	server.ParserOptions = ldr.ParserOptions
	server.Encoding = ldr.Encoding
	server.ReadOnly = cmd.ReadOnly
	server.WatchEnabled = cmd.Watch

	printInfof(ctx.Stdout, "Starting server on http://%s:%d", server.Host, cmd.Port)
	printInfof(ctx.Stdout, "Serving: %s", pathStyle.Render(file))

	if cmd.ReadOnly {
		printInfof(ctx.Stdout, "Server running in READ-ONLY mode")
	}

	return server.Start(runCtx)
}
