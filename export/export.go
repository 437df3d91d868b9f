// Package export writes a ledger as an Excel workbook.
//
// The workbook has one sheet per entity kind: company details, accounts,
// period values and voucher rows. Every sheet starts with a bold header row.
// Amounts are written as numbers so they can be summed in the spreadsheet;
// dates are written as YYYYMMDD text the way they appear in the file.
//
// Example usage:
//
//	f, err := export.Workbook(ctx, l)
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//	err = f.SaveAs("bokslut.xlsx")
package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/robinvdvleuten/sie/ledger"
	"github.com/robinvdvleuten/sie/telemetry"
)

// Sheet names.
const (
	SheetCompany  = "Company"
	SheetAccounts = "Accounts"
	SheetValues   = "Balances"
	SheetVouchers = "Vouchers"
)

var (
	accountHeader = []any{"Account", "Name", "Type", "Unit", "SRU"}
	valueHeader   = []any{"Kind", "Year", "Period", "Account", "Objects", "Amount", "Quantity"}
	voucherHeader = []any{"Series", "Number", "Date", "Text", "Kind", "Account", "Objects", "Amount", "Row date", "Row text", "Quantity", "Sign"}
)

// Workbook builds a workbook for l. The caller must close the returned file.
func Workbook(ctx context.Context, l *ledger.Ledger) (*excelize.File, error) {
	timer := telemetry.StartTimer(ctx, "export.workbook")
	defer timer.End()

	f := excelize.NewFile()
	w := &sheetWriter{f: f}

	if err := f.SetSheetName("Sheet1", SheetCompany); err != nil {
		_ = f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.header = bold
	timer.Count(len(l.Vouchers), "vouchers")

	w.company(l)
	w.accounts(l)
	w.values(l)
	w.vouchers(l)

	if w.err != nil {
		_ = f.Close()
		return nil, w.err
	}
	return f, nil
}

// Write builds the workbook for l and writes it to out.
func Write(ctx context.Context, l *ledger.Ledger, out io.Writer) error {
	f, err := Workbook(ctx, l)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return f.Write(out)
}

// sheetWriter appends rows and keeps the first error.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) sheet(name string, header []any) {
	if w.err != nil {
		return
	}
	if name != SheetCompany {
		if _, err := w.f.NewSheet(name); err != nil {
			w.err = err
			return
		}
	}
	if header != nil {
		w.row(name, 1, header)
		if w.err == nil {
			w.err = w.f.SetRowStyle(name, 1, 1, w.header)
		}
	}
}

func (w *sheetWriter) row(name string, n int, values []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(name, cell, &values)
}

func (w *sheetWriter) company(l *ledger.Ledger) {
	w.sheet(SheetCompany, nil)

	c := l.Company
	rows := [][]any{
		{"Name", c.Name},
		{"Code", c.Code},
		{"Organization number", c.OrgNumber},
		{"Organization type", c.OrgType},
		{"SNI code", c.SNI},
		{"Contact", c.Address.Contact},
		{"Street", c.Address.Street},
		{"Postal", c.Address.Postal},
		{"Phone", c.Address.Phone},
		{"SIE type", l.SieType},
		{"Program", strings.Join(l.Program, " ")},
		{"Generated", l.GenDate.String()},
		{"Currency", l.Currency},
	}
	for _, fy := range l.SortedFiscalYears() {
		rows = append(rows, []any{fmt.Sprintf("Fiscal year %d", fy.ID), fy.Start.String() + "-" + fy.End.String()})
	}

	for i, r := range rows {
		w.row(SheetCompany, i+1, r)
	}
	if w.err == nil {
		w.err = w.f.SetColStyle(SheetCompany, "A", w.header)
	}
	if w.err == nil {
		w.err = w.f.SetColWidth(SheetCompany, "A", "A", 22)
	}
}

func (w *sheetWriter) accounts(l *ledger.Ledger) {
	w.sheet(SheetAccounts, accountHeader)

	for i, a := range l.SortedAccounts() {
		w.row(SheetAccounts, i+2, []any{a.Number, a.Name, a.Type, a.Unit, strings.Join(a.SRU, " ")})
	}
}

func (w *sheetWriter) values(l *ledger.Ledger) {
	w.sheet(SheetValues, valueHeader)

	n := 2
	for _, token := range ledger.PeriodTokens {
		for _, v := range l.Values(token) {
			var period any
			if ledger.HasPeriod(token) {
				period = v.Period
			}
			w.row(SheetValues, n, []any{
				strings.TrimPrefix(token, "#"),
				v.YearNr,
				period,
				v.Account,
				objects(v.Objects),
				number(v.Amount),
				quantity(v.Quantity),
			})
			n++
		}
	}
}

func (w *sheetWriter) vouchers(l *ledger.Ledger) {
	w.sheet(SheetVouchers, voucherHeader)

	n := 2
	for _, v := range l.Vouchers {
		for _, r := range v.Rows {
			token := r.Token
			if token == "" {
				token = ledger.TokenTRANS
			}
			w.row(SheetVouchers, n, []any{
				v.Series,
				v.Number,
				v.Date.String(),
				v.Text,
				strings.TrimPrefix(token, "#"),
				r.Account,
				objects(r.Objects),
				number(r.Amount),
				r.Date.String(),
				r.Text,
				quantity(r.Quantity),
				r.Sign,
			})
			n++
		}
	}
}

func objects(refs []ledger.ObjectRef) string {
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = ref.String()
	}
	return strings.Join(parts, " ")
}

func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// quantity leaves the cell empty for a zero quantity.
func quantity(d decimal.Decimal) any {
	if d.IsZero() {
		return nil
	}
	return d.InexactFloat64()
}
