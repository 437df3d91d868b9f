package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/sie/ledger"
)

func TestOptionsDefaults(t *testing.T) {
	p := New()
	opts := p.Options()

	assert.False(t, opts.CollectErrors)
	assert.Equal(t, ledger.DefaultBalanceIgnore, opts.balanceIgnore())
	assert.True(t, opts.accepts(1))
	assert.True(t, opts.accepts(4))
}

func TestOptionsAcceptSIETypes(t *testing.T) {
	opts := New(WithAcceptSIETypes(3, 4)).Options()
	assert.False(t, opts.accepts(2))
	assert.True(t, opts.accepts(3))
}

func TestLoadOptionsFile(t *testing.T) {
	opts, err := LoadOptionsFile("testdata/strict.yaml")
	assert.NoError(t, err)

	assert.True(t, opts.CollectErrors)
	assert.True(t, opts.AllowUnbalanced)
	assert.Equal(t, []int{3, 4}, opts.AcceptSIETypes)
	assert.Equal(t, "utf-8", opts.Encoding)

	p := New(WithFilename("bokslut.se"), WithOptions(opts))
	got := p.Options()
	assert.Equal(t, "bokslut.se", got.Filename)
	assert.Equal(t, []string{"#BTRANS"}, got.balanceIgnore())
}

func TestLoadOptionsFileErrors(t *testing.T) {
	_, err := LoadOptionsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("encoding: ebcdic\n"), 0o644))
	_, err = LoadOptionsFile(path)
	assert.Contains(t, err.Error(), "unknown encoding")

	assert.NoError(t, os.WriteFile(path, []byte("collect_errors: [\n"), 0o644))
	_, err = LoadOptionsFile(path)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}
