// Package checksum implements the rolling checksum of the checksum section.
//
// The checksum is a CRC-32 with the reversed polynomial 0xEDB88320 over the
// PC8 bytes of every record's tag followed by its fields, with the object
// list delimiters { and } left out. Records are folded in encounter order,
// so the result depends on record order.
package checksum

import (
	"hash/crc32"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Polynomial is the reversed CRC-32 polynomial.
const Polynomial = 0xEDB88320

// crcTable is the 256-entry lookup table derived from Polynomial.
var crcTable = crc32.MakeTable(Polynomial)

var braceStripper = strings.NewReplacer("{", "", "}", "")

// Accumulator folds records into a running checksum. The zero value is ready
// to use but not started.
type Accumulator struct {
	started bool
	crc     uint32
	encoder *encoding.Encoder
}

// New creates an accumulator.
func New() *Accumulator {
	return &Accumulator{}
}

// Start begins accumulation. Records added before Start are ignored.
func (a *Accumulator) Start() {
	a.started = true
}

// Started reports whether Start has been called.
func (a *Accumulator) Started() bool {
	return a.started
}

// Add folds a record into the checksum. It does nothing until Start is called.
func (a *Accumulator) Add(tag string, fields []string) {
	if !a.started {
		return
	}
	a.write(tag)
	for _, f := range fields {
		a.write(braceStripper.Replace(f))
	}
}

func (a *Accumulator) write(s string) {
	a.crc = crc32.Update(a.crc, crcTable, a.bytes(s))
}

// bytes encodes s to PC8. Characters without a PC8 representation are
// replaced, the same way the line writer replaces them on output.
func (a *Accumulator) bytes(s string) []byte {
	if isASCII(s) {
		return []byte(s)
	}
	if a.encoder == nil {
		a.encoder = encoding.ReplaceUnsupported(charmap.CodePage437.NewEncoder())
	}
	b, err := a.encoder.Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return b
}

// Sum returns the one's complement of the running register.
func (a *Accumulator) Sum() uint32 {
	return a.crc
}

// Value returns the checksum as the signed integer written in the checksum
// record.
func (a *Accumulator) Value() int64 {
	return int64(int32(a.crc))
}

// Matches reports whether a declared total equals the checksum. Both the
// signed and the unsigned rendering of the checksum are accepted.
func (a *Accumulator) Matches(total int64) bool {
	return uint32(total) == a.crc && (total == int64(a.crc) || total == a.Value())
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
