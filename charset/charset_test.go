package charset

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"golang.org/x/text/encoding/unicode"
)

func TestRoundTripPC8(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	assert.NoError(t, w.WriteLine(`#FNAMN "Åkeri & Söner"`))
	assert.NoError(t, w.WriteLine("#KONTO 1910 Kassa"))
	assert.NoError(t, w.Flush())

	// Å is 0x8F and ö is 0x94 in code page 437.
	assert.True(t, bytes.Contains(buf.Bytes(), []byte{0x8F, 'k'}))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte{'S', 0x94}))
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\r\n")))

	r := NewReader(&buf, nil)
	line, err := r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, `#FNAMN "Åkeri & Söner"`, line)
	assert.Equal(t, 1, r.Line())

	line, err = r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "#KONTO 1910 Kassa", line)

	_, err = r.ReadLine()
	assert.Equal(t, io.EOF, err)
}

func TestReaderAcceptsBareNewlines(t *testing.T) {
	r := NewReader(strings.NewReader("#FLAGGA 0\n#SIETYP 4\n"), unicode.UTF8)

	line, err := r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "#FLAGGA 0", line)

	line, err = r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "#SIETYP 4", line)
}

func TestUnsupportedCharactersAreReplaced(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	assert.NoError(t, w.WriteLine("#PROSA €"))
	assert.NoError(t, w.Flush())

	assert.False(t, strings.Contains(buf.String(), "€"))
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"PC8", "cp437", "", "UTF-8", "latin1", "windows-1252"} {
		enc, err := Lookup(name)
		assert.NoError(t, err, name)
		assert.NotZero(t, enc)
	}

	_, err := Lookup("ebcdic")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	s, err := Decode([]byte{'#', 'F', 'N', 'A', 'M', 'N', ' ', 0x8F, 0x94}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "#FNAMN Åö", s)

	s, err = Decode([]byte("Åö"), unicode.UTF8)
	assert.NoError(t, err)
	assert.Equal(t, "Åö", s)
}
