package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/robinvdvleuten/sie/charset"
)

// ReadSieType returns the #SIETYP of a file without parsing the rest of it.
// It returns 0 when the file ends or its first voucher starts before a
// #SIETYP record.
func ReadSieType(r io.Reader) (int, error) {
	src := charset.NewReader(r, nil)
	for {
		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}

		rec := Tokenize(line)
		if rec == nil {
			continue
		}
		switch rec.Tag {
		case TagSieType:
			n, err := rec.Int(0)
			if err != nil {
				return 0, fmt.Errorf("line %d: %w", src.Line(), err)
			}
			return n, nil
		case "#VER":
			return 0, nil
		}
	}
}
