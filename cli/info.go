package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/sie/ledger"
	"github.com/robinvdvleuten/sie/output"
)

const maxNameWidth = 32

type InfoCmd struct {
	ParserFlags

	File FileOrStdin `help:"SIE input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Year int         `help:"Fiscal year to total (0 is the current year, -1 the previous)." default:"0"`
}

func (cmd *InfoCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, fmt.Sprintf("info %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	ldr, err := newLoader(globals, cmd.ParserFlags)
	if err != nil {
		return err
	}

	l, err := cmd.File.Load(runCtx, ldr)
	if err != nil {
		renderer := NewErrorRenderer(cmd.File.Source(globals.Encoding))
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		return NewCommandError(ExitProblems)
	}

	writeInfo(ctx.Stdout, l, cmd.Year)
	return nil
}

// writeInfo prints the header summary followed by a per-account table of
// opening balance, closing balance and result for the given year.
func writeInfo(w io.Writer, l *ledger.Ledger, year int) {
	styles := output.NewStyles(w)

	title := l.Company.Name
	if l.Company.OrgNumber != "" {
		title += " (" + l.Company.OrgNumber + ")"
	}
	_, _ = fmt.Fprintln(w, styles.Keyword(title))

	field := func(name, value string) {
		if value == "" {
			return
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", runewidth.FillRight(name, 13), value)
	}

	if l.SieType > 0 {
		field("SIE type", fmt.Sprint(l.SieType))
	}
	field("Program", strings.Join(l.Program, " "))
	if l.GenDate != nil {
		field("Generated", strings.TrimSpace(l.GenDate.String()+" "+l.GenSign))
	}
	field("Currency", currency(l))

	var years []string
	for _, fy := range l.SortedFiscalYears() {
		years = append(years, fmt.Sprintf("%d: %s-%s", fy.ID, fy.Start, fy.End))
	}
	field("Fiscal years", strings.Join(years, ", "))

	var declared, objects int
	for _, d := range l.Dimensions {
		if !d.IsDefault {
			declared++
		}
		objects += len(d.Objects)
	}
	field("Dimensions", fmt.Sprintf("%d declared, %s", declared, pluralize(objects, "object")))
	field("Accounts", fmt.Sprint(len(l.Accounts)))

	var rows int
	for _, v := range l.Vouchers {
		rows += len(v.Rows)
	}
	field("Vouchers", fmt.Sprintf("%d (%s)", len(l.Vouchers), pluralize(rows, "row")))

	var counts []string
	for _, token := range ledger.PeriodTokens {
		if n := len(l.Values(token)); n > 0 {
			counts = append(counts, fmt.Sprintf("%s %d", strings.TrimPrefix(token, "#"), n))
		}
	}
	field("Values", strings.Join(counts, ", "))

	writeAccountTable(w, styles, l, year)
}

func writeAccountTable(w io.Writer, styles *output.Styles, l *ledger.Ledger, year int) {
	type totals struct{ opening, closing, result decimal.Decimal }
	sums := make(map[string]*totals)
	add := func(token string, pick func(*totals) *decimal.Decimal) {
		for _, v := range l.Values(token) {
			if v.YearNr != year || len(v.Objects) > 0 {
				continue
			}
			t, ok := sums[v.Account]
			if !ok {
				t = &totals{}
				sums[v.Account] = t
			}
			p := pick(t)
			*p = p.Add(v.Amount)
		}
	}
	add(ledger.TokenIB, func(t *totals) *decimal.Decimal { return &t.opening })
	add(ledger.TokenUB, func(t *totals) *decimal.Decimal { return &t.closing })
	add(ledger.TokenRES, func(t *totals) *decimal.Decimal { return &t.result })

	if len(sums) == 0 {
		return
	}

	cur := currency(l)
	var table [][]string
	for _, a := range l.SortedAccounts() {
		t, ok := sums[a.Number]
		if !ok {
			continue
		}
		table = append(table, []string{
			a.Number,
			runewidth.Truncate(a.Name, maxNameWidth, "…"),
			formatMoney(t.opening, cur),
			formatMoney(t.closing, cur),
			formatMoney(t.result, cur),
		})
	}

	header := []string{"Account", "Name", "Opening", "Closing", "Result"}
	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, table...) {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	_, _ = fmt.Fprintln(w)
	cells := make([]string, len(header))
	for i, h := range header {
		if i >= 2 {
			cells[i] = styles.Keyword(fillLeft(h, widths[i]))
		} else {
			cells[i] = styles.Keyword(runewidth.FillRight(h, widths[i]))
		}
	}
	_, _ = fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))

	for _, row := range table {
		t := sums[row[0]]
		cells[0] = styles.Account(runewidth.FillRight(row[0], widths[0]))
		cells[1] = runewidth.FillRight(row[1], widths[1])
		cells[2] = styles.Amount(fillLeft(row[2], widths[2]), t.opening.IsNegative())
		cells[3] = styles.Amount(fillLeft(row[3], widths[3]), t.closing.IsNegative())
		cells[4] = styles.Amount(fillLeft(row[4], widths[4]), t.result.IsNegative())
		_, _ = fmt.Fprintln(w, strings.Join(cells, "  "))
	}
}

func fillLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

func currency(l *ledger.Ledger) string {
	if l.Currency == "" {
		return money.SEK
	}
	return l.Currency
}

// formatMoney renders an amount in the display format of the currency,
// rounded to its minor unit.
func formatMoney(d decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return d.StringFixed(2) + " " + code
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
