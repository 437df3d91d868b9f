// Package formatter writes a ledger as a SIE file.
//
// Records are written in a fixed order: the header, company details, fiscal
// years, dimensions with their objects, accounts, SRU codes, the period
// values and finally the vouchers. Texts are always quoted and escaped the
// way the parser's tokenizer reads them back.
//
// Example usage:
//
//	f := formatter.New(formatter.WithChecksum())
//	err := f.Format(ctx, l, os.Stdout)
package formatter

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/sie/charset"
	"github.com/robinvdvleuten/sie/checksum"
	"github.com/robinvdvleuten/sie/ledger"
	"github.com/robinvdvleuten/sie/parser"
	"github.com/robinvdvleuten/sie/telemetry"
)

// Formatter writes ledgers.
type Formatter struct {
	// Checksum adds the #KSUMMA start record after #FLAGGA and the computed
	// total as the last record.
	Checksum bool

	// Encoding names the output encoding. The default is PC8.
	Encoding string
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithChecksum enables the checksum section.
func WithChecksum() Option {
	return func(f *Formatter) {
		f.Checksum = true
	}
}

// WithEncoding sets the output encoding by name.
func WithEncoding(name string) Option {
	return func(f *Formatter) {
		f.Encoding = name
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format writes l to w. Each record is encoded and written as soon as it is
// rendered.
func (f *Formatter) Format(ctx context.Context, l *ledger.Ledger, w io.Writer) error {
	timer := telemetry.StartTimer(ctx, "formatter.format")
	defer timer.End()

	enc, err := charset.Lookup(f.Encoding)
	if err != nil {
		return err
	}

	out := charset.NewWriter(w, enc)
	n, err := f.write(l, out.WriteLine)
	timer.Count(n, "lines")
	if err != nil {
		return err
	}
	return out.Flush()
}

// Lines renders l as decoded lines without terminators.
func (f *Formatter) Lines(l *ledger.Ledger) []string {
	var lines []string
	_, _ = f.write(l, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	return lines
}

// write renders l record by record into sink and returns the number of lines
// written. It stops at the first error from sink.
func (f *Formatter) write(l *ledger.Ledger, sink func(string) error) (int, error) {
	b := &builder{sink: sink}

	b.emit(parser.TagFlag, strconv.Itoa(l.Flag))
	if f.Checksum {
		b.emit(parser.TagChecksum)
		b.sum = checksum.New()
		b.sum.Start()
	}

	writeHeader(b, l)
	writeDimensions(b, l)
	writeAccounts(b, l)
	writeValues(b, l)
	writeVouchers(b, l)

	if f.Checksum {
		b.put(parser.TagChecksum + " " + strconv.FormatInt(b.sum.Value(), 10))
	}
	return b.n, b.err
}

// builder renders records into a sink and feeds each to the checksum once it
// is running.
type builder struct {
	sink func(string) error
	sum  *checksum.Accumulator
	n    int
	err  error
}

func (b *builder) emit(tag string, fields ...string) {
	line := tag
	if len(fields) > 0 {
		line += " " + strings.Join(fields, " ")
	}
	if b.sum != nil {
		rec := parser.Tokenize(line)
		b.sum.Add(rec.Tag, rec.Fields)
	}
	b.put(line)
}

// put writes a line without adding it to the checksum.
func (b *builder) put(line string) {
	if b.err != nil {
		return
	}
	if b.err = b.sink(line); b.err == nil {
		b.n++
	}
}

func writeHeader(b *builder, l *ledger.Ledger) {
	if len(l.Program) > 0 {
		fields := make([]string, len(l.Program))
		for i, p := range l.Program {
			fields[i] = parser.Quote(p)
		}
		b.emit(parser.TagProgram, fields...)
	}
	if l.Format != "" {
		b.emit(parser.TagFormat, ident(l.Format))
	}
	if l.GenDate != nil {
		if l.GenSign != "" {
			b.emit(parser.TagGenerated, l.GenDate.String(), parser.Quote(l.GenSign))
		} else {
			b.emit(parser.TagGenerated, l.GenDate.String())
		}
	}
	if l.SieType > 0 {
		b.emit(parser.TagSieType, strconv.Itoa(l.SieType))
	}
	if l.Note != "" {
		b.emit(parser.TagNote, parser.Quote(l.Note))
	}

	c := l.Company
	if c.Code != "" {
		b.emit(parser.TagCompanyCode, ident(c.Code))
	}
	if c.OrgNumber != "" || c.AcqNumber != "" || c.ActNumber != "" {
		fields := []string{ident(c.OrgNumber)}
		if c.AcqNumber != "" || c.ActNumber != "" {
			fields = append(fields, ident(c.AcqNumber))
		}
		if c.ActNumber != "" {
			fields = append(fields, ident(c.ActNumber))
		}
		b.emit(parser.TagOrgNumber, fields...)
	}
	if c.SNI != "" {
		b.emit(parser.TagSNI, ident(c.SNI))
	}
	if c.Name != "" {
		b.emit(parser.TagCompany, parser.Quote(c.Name))
	}
	if !c.Address.IsZero() {
		b.emit(parser.TagAddress,
			parser.Quote(c.Address.Contact),
			parser.Quote(c.Address.Street),
			parser.Quote(c.Address.Postal),
			parser.Quote(c.Address.Phone))
	}

	if c.OrgType != "" {
		b.emit(parser.TagOrgType, ident(c.OrgType))
	}
	if l.AccountPlanType != "" {
		b.emit(parser.TagPlanType, ident(l.AccountPlanType))
	}
	if l.Currency != "" {
		b.emit(parser.TagCurrency, ident(l.Currency))
	}
	if l.TaxYear != 0 {
		b.emit(parser.TagTaxYear, strconv.Itoa(l.TaxYear))
	}
	if l.PeriodCoverage != nil {
		b.emit(parser.TagCoverage, l.PeriodCoverage.String())
	}

	for _, fy := range l.SortedFiscalYears() {
		b.emit(parser.TagFiscalYear, strconv.Itoa(fy.ID), fy.Start.String(), fy.End.String())
	}
}

// writeDimensions writes every declared dimension, parents before their
// children, each followed by its objects. Standard dimensions that were
// never redeclared only contribute their objects.
func writeDimensions(b *builder, l *ledger.Ledger) {
	for _, d := range l.SortedDimensions() {
		switch {
		case d.Parent != "":
			b.emit(parser.TagSubDim, ident(d.Number), parser.Quote(d.Name), ident(d.Parent))
		case !d.IsDefault:
			b.emit(parser.TagDimension, ident(d.Number), parser.Quote(d.Name))
		}
		for _, o := range d.SortedObjects() {
			b.emit(parser.TagObject, ident(d.Number), parser.Quote(o.Number), parser.Quote(o.Name))
		}
	}
}

// writeAccounts writes each account with its type and unit. SRU codes follow
// as one group after all accounts.
func writeAccounts(b *builder, l *ledger.Ledger) {
	accounts := l.SortedAccounts()
	for _, a := range accounts {
		b.emit(parser.TagAccount, ident(a.Number), parser.Quote(a.Name))
		if a.Type != "" {
			b.emit(parser.TagAccountType, ident(a.Number), ident(a.Type))
		}
		if a.Unit != "" {
			b.emit(parser.TagUnit, ident(a.Number), parser.Quote(a.Unit))
		}
	}
	for _, a := range accounts {
		for _, code := range a.SRU {
			b.emit(parser.TagSRU, ident(a.Number), ident(code))
		}
	}
}

func writeValues(b *builder, l *ledger.Ledger) {
	for _, token := range ledger.PeriodTokens {
		for _, v := range l.Values(token) {
			fields := []string{strconv.Itoa(v.YearNr)}
			if ledger.HasPeriod(token) {
				fields = append(fields, strconv.Itoa(v.Period))
			}
			fields = append(fields, ident(v.Account))
			if ledger.HasObjects(token) {
				fields = append(fields, objectList(v.Objects))
			}
			fields = append(fields, number(v.Amount))
			if !v.Quantity.IsZero() {
				fields = append(fields, number(v.Quantity))
			}
			b.emit(token, fields...)
		}
	}
}

func writeVouchers(b *builder, l *ledger.Ledger) {
	for _, v := range l.Vouchers {
		fields := []string{ident(v.Series), ident(v.Number), v.Date.String(), parser.Quote(v.Text)}
		if v.RegDate != nil || v.Sign != "" {
			fields = append(fields, v.RegDate.String())
		}
		if v.Sign != "" {
			fields = append(fields, parser.Quote(v.Sign))
		}
		token := v.Token
		if token == "" {
			token = ledger.TokenVER
		}
		b.emit(token, fields...)

		b.emit(parser.TagBlockOpen)
		for _, r := range v.Rows {
			writeRow(b, r)
		}
		b.emit(parser.TagBlockClose)
	}
}

func writeRow(b *builder, r *ledger.Row) {
	token := r.Token
	if token == "" {
		token = ledger.TokenTRANS
	}

	fields := []string{
		ident(r.Account),
		objectList(r.Objects),
		number(r.Amount),
		r.Date.String(),
		parser.Quote(r.Text),
	}
	if !r.Quantity.IsZero() || r.Sign != "" {
		fields = append(fields, number(r.Quantity))
	}
	if r.Sign != "" {
		fields = append(fields, parser.Quote(r.Sign))
	}
	b.emit(token, fields...)
}

// objectList renders an object list. An empty list is written as {}.
func objectList(refs []ledger.ObjectRef) string {
	var buf strings.Builder
	buf.WriteByte('{')
	for i, ref := range refs {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(ident(ref.Dimension))
		buf.WriteByte(' ')
		buf.WriteString(parser.Quote(ref.Number))
	}
	buf.WriteByte('}')
	return buf.String()
}

// number writes d with the scale it was parsed with, so 100.00 stays 100.00.
func number(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// ident writes an identifier bare when the tokenizer reads it back unchanged
// and quoted otherwise.
func ident(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"\\{}") {
		return parser.Quote(s)
	}
	return s
}
