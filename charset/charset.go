// Package charset provides the line oriented byte source and sink used for
// SIE files. Files are encoded in PC8 (IBM code page 437) unless another
// encoding is chosen.
package charset

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// PC8 is the default file encoding.
var PC8 encoding.Encoding = charmap.CodePage437

// maxLineSize bounds a single line. Lines carrying long texts are rare but
// legal.
const maxLineSize = 1024 * 1024

// Lookup returns the encoding registered under a (case-insensitive) name.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "pc8", "cp437", "ibm437":
		return PC8, nil
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// Decode decodes a whole file held in memory. A nil enc means PC8.
func Decode(data []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		enc = PC8
	}
	b, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return string(b), nil
}

// Reader reads decoded lines without their terminators.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader decoding r with enc. A nil enc means PC8.
func NewReader(r io.Reader, enc encoding.Encoding) *Reader {
	if enc == nil {
		enc = PC8
	}
	scanner := bufio.NewScanner(transform.NewReader(r, enc.NewDecoder()))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: scanner}
}

// ReadLine returns the next line. It returns io.EOF when the source is
// exhausted.
func (r *Reader) ReadLine() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("line %d: %w", r.line+1, err)
		}
		return "", io.EOF
	}
	r.line++
	return strings.TrimSuffix(r.scanner.Text(), "\r"), nil
}

// Line returns the number of the last line read (1-indexed).
func (r *Reader) Line() int {
	return r.line
}

// Writer writes encoded lines, each followed by CRLF.
type Writer struct {
	w   *bufio.Writer
	enc *encoding.Encoder
}

// NewWriter creates a Writer encoding to w with enc. A nil enc means PC8.
// Characters the encoding cannot represent are replaced.
func NewWriter(w io.Writer, enc encoding.Encoding) *Writer {
	if enc == nil {
		enc = PC8
	}
	return &Writer{
		w:   bufio.NewWriter(w),
		enc: encoding.ReplaceUnsupported(enc.NewEncoder()),
	}
}

// WriteLine writes one line and its terminator.
func (w *Writer) WriteLine(line string) error {
	b, err := w.enc.Bytes([]byte(line))
	if err != nil {
		return fmt.Errorf("encode line: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	_, err = w.w.WriteString("\r\n")
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
