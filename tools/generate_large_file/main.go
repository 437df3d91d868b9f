// Large SIE File Generator
//
// This tool generates a large SIE 4 file for performance testing and profiling.
// It creates balanced vouchers of various shapes, period values and objects to
// stress-test the parser and the writer.
//
// Usage:
//
//	go run main.go > large.se
//	go run main.go 20000000 > large.se  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/robinvdvleuten/sie/charset"
	"github.com/robinvdvleuten/sie/parser"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

type account struct {
	number string
	name   string
	kind   string
}

var (
	accounts = []account{
		{"1510", "Kundfordringar", "T"},
		{"1910", "Kassa", "T"},
		{"1930", "Företagskonto", "T"},
		{"2440", "Leverantörsskulder", "S"},
		{"2610", "Utgående moms 25%", "S"},
		{"2640", "Ingående moms", "T"},
		{"3010", "Försäljning varor", "I"},
		{"3040", "Försäljning tjänster", "I"},
		{"4010", "Inköp av varor", "K"},
		{"5010", "Lokalhyra", "K"},
		{"5410", "Förbrukningsinventarier", "K"},
		{"6110", "Kontorsmateriel", "K"},
		{"6212", "Mobiltelefon", "K"},
		{"7010", "Löner till tjänstemän", "K"},
	}

	costCenters = []string{"100", "200", "300", "400"}
	projects    = []string{"P1", "P2", "P3", "P4", "P5"}

	texts = []string{
		"Kontantförsäljning", "Faktura kund", "Inköp material",
		"Hyra kontor", "Telefonräkning", "Löneutbetalning",
		"Kontorsmaterial", "Konsultarvode", "Återbetalning",
	}

	signs = []string{"AB", "CD", "EF", "GH"}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	out := &counter{w: charset.NewWriter(os.Stdout, nil)}
	defer func() {
		err := out.err
		if err == nil {
			err = out.w.Flush()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
			os.Exit(1)
		}
	}()

	writeHeader(out)

	startDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	currentDate := startDate

	voucherCount := 0
	numbers := map[string]int{}

	for out.bytes < targetSize {
		series := "A"
		var rows []string

		switch rand.Intn(10) {
		case 0, 1, 2, 3: // 40% - Simple voucher
			rows = simpleRows()

		case 4, 5: // 20% - Sale with VAT
			series = "B"
			rows = vatRows()

		case 6, 7: // 20% - Rows with objects
			series = "C"
			rows = objectRows()

		case 8: // 10% - Corrected voucher with removed and added rows
			rows = correctedRows(currentDate)

		case 9: // 10% - Period values
			writePeriodValues(out, currentDate)
			currentDate = currentDate.AddDate(0, 0, rand.Intn(5)+1)
			continue
		}

		numbers[series]++
		out.line(fmt.Sprintf("#VER %s %d %s %s %s %s",
			series, numbers[series], sieDate(currentDate),
			parser.Quote(pick(texts)), sieDate(currentDate), parser.Quote(pick(signs))))
		out.line("{")
		for _, row := range rows {
			out.line(row)
		}
		out.line("}")
		voucherCount++

		// Advance date by 1-5 days
		currentDate = currentDate.AddDate(0, 0, rand.Intn(5)+1)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d vouchers\n", out.bytes, voucherCount)
}

// counter writes lines and tracks the approximate output size.
type counter struct {
	w     *charset.Writer
	bytes int
	err   error
}

func (c *counter) line(s string) {
	if c.err != nil {
		return
	}
	c.err = c.w.WriteLine(s)
	c.bytes += len(s) + 2
}

func writeHeader(out *counter) {
	out.line("#FLAGGA 0")
	out.line("#FORMAT PC8")
	out.line("#SIETYP 4")
	out.line(`#PROGRAM "generate_large_file" 1.0`)
	out.line("#GEN " + sieDate(time.Now()))
	out.line(`#FNAMN "Prestandatest AB"`)
	out.line("#ORGNR 556000-0000")
	out.line("#RAR 0 20200101 20201231")
	out.line("#RAR -1 20190101 20191231")
	out.line("#KPTYP BAS2014")
	out.line("#VALUTA SEK")

	out.line(`#DIM 1 "Kostnadsställe"`)
	for _, cc := range costCenters {
		out.line(fmt.Sprintf("#OBJEKT 1 %s %s", parser.Quote(cc), parser.Quote("Avdelning "+cc)))
	}
	out.line(`#DIM 6 "Projekt"`)
	for _, p := range projects {
		out.line(fmt.Sprintf("#OBJEKT 6 %s %s", parser.Quote(p), parser.Quote("Projekt "+p)))
	}

	for _, a := range accounts {
		out.line(fmt.Sprintf("#KONTO %s %s", a.number, parser.Quote(a.name)))
		out.line(fmt.Sprintf("#KTYP %s %s", a.number, a.kind))
	}

	for _, a := range accounts {
		if a.kind != "T" && a.kind != "S" {
			continue
		}
		balance := randAmount(1000, 500000)
		out.line(fmt.Sprintf("#IB 0 %s %s", a.number, money(balance)))
		out.line(fmt.Sprintf("#IB -1 %s %s", a.number, money(balance/2)))
	}
}

func simpleRows() []string {
	amount := randAmount(10, 50000)
	from, to := pickAccount(), pickAccount()
	return []string{
		trans(from.number, "{}", amount),
		trans(to.number, "{}", -amount),
	}
}

func vatRows() []string {
	net := randAmount(100, 100000)
	vat := net / 4
	return []string{
		trans("1510", "{}", net+vat),
		trans("3010", "{}", -net),
		trans("2610", "{}", -vat),
	}
}

func objectRows() []string {
	a, b := randAmount(100, 20000), randAmount(100, 20000)
	objects := func() string {
		return fmt.Sprintf("{1 %s 6 %s}", parser.Quote(pick(costCenters)), parser.Quote(pick(projects)))
	}
	return []string{
		trans("4010", objects(), a),
		trans("5410", objects(), b),
		trans("2440", "{}", -(a + b)),
	}
}

func correctedRows(date time.Time) []string {
	amount := randAmount(10, 5000)
	wrong := randAmount(10, 5000)
	d := sieDate(date)
	sign := parser.Quote(pick(signs))
	return []string{
		trans("6110", "{}", amount),
		fmt.Sprintf("#BTRANS 1910 {} %s %s %s 0 %s", money(-wrong), d, parser.Quote("Felaktig rad"), sign),
		fmt.Sprintf("#RTRANS 1930 {} %s %s %s 0 %s", money(-amount), d, parser.Quote("Rättad rad"), sign),
		trans("1930", "{}", -amount),
	}
}

func writePeriodValues(out *counter, date time.Time) {
	period := date.Format("200601")
	a := pickAccount()
	out.line(fmt.Sprintf("#PSALDO 0 %s %s {} %s", period, a.number, money(randAmount(-50000, 50000))))
	out.line(fmt.Sprintf("#PBUDGET 0 %s %s {} %s", period, a.number, money(randAmount(-50000, 50000))))
	out.line(fmt.Sprintf("#PSALDO 0 %s %s {1 %s} %s", period, a.number, parser.Quote(pick(costCenters)), money(randAmount(-5000, 5000))))
}

// Helper functions

func trans(account, objects string, amount int64) string {
	return fmt.Sprintf("#TRANS %s %s %s", account, objects, money(amount))
}

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}

func pickAccount() account {
	return accounts[rand.Intn(len(accounts))]
}

// randAmount returns an amount in öre between min and max kronor.
func randAmount(lo, hi int64) int64 {
	return (lo+rand.Int63n(hi-lo))*100 + rand.Int63n(100)
}

// money formats an amount in öre as kronor with two decimals.
func money(ore int64) string {
	sign := ""
	if ore < 0 {
		sign = "-"
		ore = -ore
	}
	return fmt.Sprintf("%s%d.%02d", sign, ore/100, ore%100)
}

func sieDate(t time.Time) string {
	return t.Format("20060102")
}
