package parser

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/sie/ledger"
)

// Position identifies a line in a source file.
type Position struct {
	Filename string
	Line     int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// ParseError is returned when parsing stops at the first error.
type ParseError struct {
	Pos        Position
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *ParseError) GetPosition() Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// newParseError wraps a positioned error.
func newParseError(err error) *ParseError {
	pe := &ParseError{Message: err.Error(), Underlying: err}
	if p, ok := err.(interface{ GetPosition() Position }); ok {
		pe.Pos = p.GetPosition()
		pe.Message = strings.TrimPrefix(pe.Message, pe.Pos.String()+": ")
	}
	return pe
}

// ValidationErrors is returned in collecting mode when at least one error was
// recorded. The ledger is returned alongside it.
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors, first: %v", len(e.Errors), e.Errors[0])
}

func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

// InvalidFileError is reported when the first record is not #FLAGGA.
type InvalidFileError struct {
	Pos    Position
	Reason string
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("%s: invalid file: %s", e.Pos, e.Reason)
}

func (e *InvalidFileError) GetPosition() Position { return e.Pos }

// OutsideVoucherError is reported for a voucher row or a closing brace with
// no open voucher.
type OutsideVoucherError struct {
	Pos Position
	Tag string
}

func (e *OutsideVoucherError) Error() string {
	return fmt.Sprintf("%s: %s outside of a voucher", e.Pos, e.Tag)
}

func (e *OutsideVoucherError) GetPosition() Position { return e.Pos }

// InvalidFeatureError is reported when a record uses a feature the declared
// file type does not allow, or when the file type itself is not accepted.
type InvalidFeatureError struct {
	Pos     Position
	Tag     string
	Reason  string
	SieType int
}

func (e *InvalidFeatureError) Error() string {
	return fmt.Sprintf("%s: %s: %s (SIE type %d)", e.Pos, e.Tag, e.Reason, e.SieType)
}

func (e *InvalidFeatureError) GetPosition() Position { return e.Pos }

// MissingObjectError is reported when a record requires an object list but
// none was found.
type MissingObjectError struct {
	Pos Position
	Tag string
}

func (e *MissingObjectError) Error() string {
	return fmt.Sprintf("%s: %s is missing its object list", e.Pos, e.Tag)
}

func (e *MissingObjectError) GetPosition() Position { return e.Pos }

// MissingParentError is reported for a #UNDERDIM referring to an unknown
// dimension.
type MissingParentError struct {
	Pos       Position
	Dimension string
	Parent    string
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("%s: dimension %s refers to unknown parent %s", e.Pos, e.Dimension, e.Parent)
}

func (e *MissingParentError) GetPosition() Position { return e.Pos }

// MissingFieldError is reported at end of input for a required record or a
// referenced dimension that was never declared.
type MissingFieldError struct {
	Pos   Position
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Pos, e.Field)
}

func (e *MissingFieldError) GetPosition() Position { return e.Pos }

// ChecksumMismatchError is reported when the #KSUMMA total does not match the
// computed checksum.
type ChecksumMismatchError struct {
	Pos      Position
	Expected int64
	Actual   int64
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("%s: checksum mismatch: file says %d, computed %d", e.Pos, e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) GetPosition() Position { return e.Pos }

// VoucherMismatchError is reported when a closed voucher does not balance.
type VoucherMismatchError struct {
	Pos     Position
	Voucher *ledger.Voucher
	Balance string
}

func (e *VoucherMismatchError) Error() string {
	return fmt.Sprintf("%s: voucher %s %s does not balance (%s)", e.Pos, e.Voucher.Series, e.Voucher.Number, e.Balance)
}

func (e *VoucherMismatchError) GetPosition() Position { return e.Pos }

// InvalidDateError is reported for a malformed date field.
type InvalidDateError struct {
	Pos   Position
	Tag   string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("%s: %s: invalid date %q", e.Pos, e.Tag, e.Value)
}

func (e *InvalidDateError) GetPosition() Position { return e.Pos }

// InvalidValueError is reported for a numeric field that does not parse.
type InvalidValueError struct {
	Pos   Position
	Tag   string
	Kind  string
	Value string
}

func (e *InvalidValueError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("%s: invalid %s %q", e.Pos, e.Kind, e.Value)
	}
	return fmt.Sprintf("%s: %s: invalid %s %q", e.Pos, e.Tag, e.Kind, e.Value)
}

func (e *InvalidValueError) GetPosition() Position { return e.Pos }
