// Package errors renders parser errors for different consumers.
//
// The package defines a Formatter interface and provides two implementations:
//   - TextFormatter: formats errors for command-line output, optionally with
//     the source lines around the offending record
//   - JSONFormatter: formats errors as structured JSON for the web browser
//
// The error types themselves live in the parser package; this package only
// handles presentation.
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/sie/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

type positioned interface {
	GetPosition() parser.Position
	Error() string
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceLines []string
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the decoded source text shown around each error.
func WithSource(source string) TextFormatterOption {
	return func(tf *TextFormatter) {
		source = strings.ReplaceAll(source, "\r\n", "\n")
		source = strings.TrimSuffix(source, "\n")
		tf.sourceLines = strings.Split(source, "\n")
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. An aggregate of collected errors is
// formatted as if passed to FormatAll.
func (tf *TextFormatter) Format(err error) string {
	var verrs *parser.ValidationErrors
	if stderrors.As(err, &verrs) {
		return tf.FormatAll(verrs.Errors)
	}

	if e, ok := err.(positioned); ok && tf.sourceLines != nil {
		return tf.formatWithSourceContext(e.GetPosition(), e.Error())
	}
	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))
		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}
	return buf.String()
}

// formatWithSourceContext writes the message followed by up to two lines
// before and one line after the error line, with a marker under the error
// line.
func (tf *TextFormatter) formatWithSourceContext(pos parser.Position, message string) string {
	if pos.Line <= 0 {
		return message
	}

	var buf bytes.Buffer
	buf.WriteString(message)
	buf.WriteString("\n\n")

	start := pos.Line - 3
	end := pos.Line + 1
	if start < 0 {
		start = 0
	}
	if end > len(tf.sourceLines) {
		end = len(tf.sourceLines)
	}

	for i := start; i < end; i++ {
		buf.WriteString("   ")
		buf.WriteString(tf.sourceLines[i])
		buf.WriteByte('\n')
		if i == pos.Line-1 {
			buf.WriteString("   ^\n")
		}
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Position *PositionJSON  `json:"position,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.ToJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs. An
// aggregate of collected errors is flattened into its members.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		var verrs *parser.ValidationErrors
		if stderrors.As(err, &verrs) {
			result = append(result, jf.FormatAllToSlice(verrs.Errors)...)
			continue
		}
		result = append(result, jf.ToJSON(err))
	}
	return result
}

// ToJSON converts an error to ErrorJSON. A *parser.ParseError is described
// by the error it wraps.
func (jf *JSONFormatter) ToJSON(err error) ErrorJSON {
	var perr *parser.ParseError
	if stderrors.As(err, &perr) && perr.Underlying != nil {
		err = perr.Underlying
	}

	errJSON := ErrorJSON{
		Type:    errorType(err),
		Message: err.Error(),
		Details: make(map[string]any),
	}

	if e, ok := err.(positioned); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
		}
		errJSON.Message = strings.TrimPrefix(errJSON.Message, pos.String()+": ")
	}

	switch e := err.(type) {
	case *parser.OutsideVoucherError:
		errJSON.Details["tag"] = e.Tag
	case *parser.InvalidFeatureError:
		errJSON.Details["tag"] = e.Tag
		errJSON.Details["sie_type"] = e.SieType
	case *parser.MissingObjectError:
		errJSON.Details["tag"] = e.Tag
	case *parser.MissingParentError:
		errJSON.Details["dimension"] = e.Dimension
		errJSON.Details["parent"] = e.Parent
	case *parser.MissingFieldError:
		errJSON.Details["field"] = e.Field
	case *parser.ChecksumMismatchError:
		errJSON.Details["expected"] = e.Expected
		errJSON.Details["actual"] = e.Actual
	case *parser.VoucherMismatchError:
		if e.Voucher != nil {
			errJSON.Details["series"] = e.Voucher.Series
			errJSON.Details["number"] = e.Voucher.Number
		}
		errJSON.Details["balance"] = e.Balance
	case *parser.InvalidDateError:
		errJSON.Details["tag"] = e.Tag
		errJSON.Details["value"] = e.Value
	case *parser.InvalidValueError:
		errJSON.Details["tag"] = e.Tag
		errJSON.Details["kind"] = e.Kind
		errJSON.Details["value"] = e.Value
	}
	if len(errJSON.Details) == 0 {
		errJSON.Details = nil
	}

	return errJSON
}

// errorType names the error kind without its package, e.g. "MissingFieldError".
func errorType(err error) string {
	name := fmt.Sprintf("%T", err)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
