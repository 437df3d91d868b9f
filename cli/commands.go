package cli

import (
	"fmt"

	"github.com/robinvdvleuten/sie/loader"
	"github.com/robinvdvleuten/sie/parser"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations." env:"SIE_TELEMETRY"`
	Config    string `help:"YAML file with parser options." env:"SIE_CONFIG"`
	Encoding  string `help:"File encoding (pc8, utf-8, latin1, cp1252)." env:"SIE_ENCODING"`
}

// ParserFlags are the parser switches shared by the commands that read files.
// They are applied on top of the options read from --config.
type ParserFlags struct {
	AllowUnbalanced  bool     `help:"Accept vouchers whose rows do not sum to zero."`
	IgnoreChecksum   bool     `help:"Do not verify the #KSUMMA checksum."`
	IgnoreMissingDim bool     `help:"Accept object references to undeclared dimensions."`
	IgnoreBTRANS     bool     `name:"ignore-btrans" help:"Skip removed rows (#BTRANS)."`
	IgnoreRTRANS     bool     `name:"ignore-rtrans" help:"Skip added rows (#RTRANS)."`
	AcceptTypes      []int    `name:"accept-type" help:"Accepted SIE file types (repeatable)." placeholder:"TYPE"`
	BalanceIgnore    []string `help:"Row tags left out of the balance check (repeatable)." placeholder:"TAG"`
}

// options turns the flags into parser options.
func (f ParserFlags) options() []parser.Option {
	var opts []parser.Option
	if f.AllowUnbalanced {
		opts = append(opts, parser.WithAllowUnbalancedVoucher())
	}
	if f.IgnoreChecksum {
		opts = append(opts, parser.WithIgnoreKSUMMA())
	}
	if f.IgnoreMissingDim {
		opts = append(opts, parser.WithIgnoreMissingDIM())
	}
	if f.IgnoreBTRANS {
		opts = append(opts, parser.WithIgnoreBTRANS())
	}
	if f.IgnoreRTRANS {
		opts = append(opts, parser.WithIgnoreRTRANS())
	}
	if len(f.AcceptTypes) > 0 {
		opts = append(opts, parser.WithAcceptSIETypes(f.AcceptTypes...))
	}
	if len(f.BalanceIgnore) > 0 {
		opts = append(opts, parser.WithBalanceIgnoreTokens(f.BalanceIgnore...))
	}
	return opts
}

// newLoader builds a loader from the global flags, the command's parser
// flags and any extra parser options.
func newLoader(globals *Globals, flags ParserFlags, extra ...parser.Option) (*loader.Loader, error) {
	var opts []parser.Option
	if globals.Config != "" {
		cfg, err := parser.LoadOptionsFile(globals.Config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithOptions(cfg))
	}
	opts = append(opts, flags.options()...)
	opts = append(opts, extra...)

	return loader.New(
		loader.WithParserOptions(opts...),
		loader.WithEncoding(globals.Encoding),
	), nil
}

type Commands struct {
	Globals

	Check  CheckCmd  `cmd:"" help:"Parse and validate a SIE file."`
	Diff   DiffCmd   `cmd:"" help:"Show the differences between two SIE files."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging SIE files."`
	Export ExportCmd `cmd:"" help:"Export a SIE file to an Excel workbook."`
	Format FormatCmd `cmd:"" help:"Rewrite a SIE file in canonical form."`
	Info   InfoCmd   `cmd:"" help:"Summarize a SIE file."`
	Web    WebCmd    `cmd:"" help:"Browse a SIE file in the web browser."`
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
