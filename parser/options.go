package parser

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding"
	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/sie/charset"
	"github.com/robinvdvleuten/sie/ledger"
)

// Options controls how strictly a file is read. The zero value is the
// strictest setting: every check runs and parsing stops at the first error.
type Options struct {
	IgnoreBTRANS          bool     `yaml:"ignore_btrans"`
	IgnoreRTRANS          bool     `yaml:"ignore_rtrans"`
	IgnoreMissingOMFATTN  bool     `yaml:"ignore_missing_omfattn"`
	AllowUnbalanced       bool     `yaml:"allow_unbalanced_voucher"`
	IgnoreKSUMMA          bool     `yaml:"ignore_ksumma"`
	IgnoreMissingDIM      bool     `yaml:"ignore_missing_dim"`
	IgnoreBadUNDERDIM     bool     `yaml:"ignore_bad_underdim"`
	StreamValues          bool     `yaml:"stream_values"`
	CollectErrors         bool     `yaml:"collect_errors"`
	AcceptSIETypes        []int    `yaml:"accept_sie_types"`
	BalanceIgnoreTokens   []string `yaml:"balance_ignore_tokens"`
	Encoding              string   `yaml:"encoding"`
	Filename              string   `yaml:"-"`
	balanceIgnoreExplicit bool
}

// Option configures a Parser.
type Option func(*Options)

// WithIgnoreBTRANS skips #BTRANS rows.
func WithIgnoreBTRANS() Option {
	return func(o *Options) { o.IgnoreBTRANS = true }
}

// WithIgnoreRTRANS skips #RTRANS rows.
func WithIgnoreRTRANS() Option {
	return func(o *Options) { o.IgnoreRTRANS = true }
}

// WithIgnoreMissingOMFATTN disables the #OMFATTN requirement for period
// values in type 2 and 3 files.
func WithIgnoreMissingOMFATTN() Option {
	return func(o *Options) { o.IgnoreMissingOMFATTN = true }
}

// WithAllowUnbalancedVoucher disables the balance check on closed vouchers.
func WithAllowUnbalancedVoucher() Option {
	return func(o *Options) { o.AllowUnbalanced = true }
}

// WithIgnoreKSUMMA disables the missing checksum total check.
func WithIgnoreKSUMMA() Option {
	return func(o *Options) { o.IgnoreKSUMMA = true }
}

// WithIgnoreMissingDIM disables the undeclared dimension check.
func WithIgnoreMissingDIM() Option {
	return func(o *Options) { o.IgnoreMissingDIM = true }
}

// WithIgnoreBadUNDERDIM drops the parent of a #UNDERDIM that refers to an
// unknown dimension instead of reporting it.
func WithIgnoreBadUNDERDIM() Option {
	return func(o *Options) { o.IgnoreBadUNDERDIM = true }
}

// WithAcceptSIETypes restricts the file types that are read. A file with any
// other #SIETYP is rejected.
func WithAcceptSIETypes(types ...int) Option {
	return func(o *Options) { o.AcceptSIETypes = append([]int(nil), types...) }
}

// WithStreamValues hands vouchers and period values to the callbacks without
// keeping them in the ledger.
func WithStreamValues() Option {
	return func(o *Options) { o.StreamValues = true }
}

// WithCollectErrors records errors and keeps parsing instead of stopping at
// the first one.
func WithCollectErrors() Option {
	return func(o *Options) { o.CollectErrors = true }
}

// WithBalanceIgnoreTokens sets the row tags excluded from the voucher balance
// check. The default excludes #BTRANS and #RTRANS.
func WithBalanceIgnoreTokens(tokens ...string) Option {
	return func(o *Options) {
		o.BalanceIgnoreTokens = append([]string(nil), tokens...)
		o.balanceIgnoreExplicit = true
	}
}

// WithFilename sets the name used in error positions.
func WithFilename(name string) Option {
	return func(o *Options) { o.Filename = name }
}

// WithEncoding sets the input encoding by name. The default is PC8.
func WithEncoding(name string) Option {
	return func(o *Options) { o.Encoding = name }
}

// WithOptions replaces all settings with a loaded set.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		filename := o.Filename
		*o = opts
		if o.Filename == "" {
			o.Filename = filename
		}
		if opts.BalanceIgnoreTokens != nil {
			o.balanceIgnoreExplicit = true
		}
	}
}

// LoadOptionsFile reads parser options from a YAML file.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if _, err := charset.Lookup(opts.Encoding); err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

func (o *Options) balanceIgnore() []string {
	if o.balanceIgnoreExplicit {
		return o.BalanceIgnoreTokens
	}
	return ledger.DefaultBalanceIgnore
}

func (o *Options) encoding() (encoding.Encoding, error) {
	return charset.Lookup(o.Encoding)
}

func (o *Options) accepts(sieType int) bool {
	if len(o.AcceptSIETypes) == 0 {
		return true
	}
	for _, t := range o.AcceptSIETypes {
		if t == sieType {
			return true
		}
	}
	return false
}
