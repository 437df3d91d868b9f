package compare_test

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/sie/compare"
	"github.com/robinvdvleuten/sie/ledger"
	"github.com/robinvdvleuten/sie/parser"
)

const base = `#FLAGGA 0
#SIETYP 4
#GEN 20210115
#FNAMN "Exempelbolaget AB"
#RAR 0 20200101 20201231
#KONTO 1910 "Kassa"
#KONTO 3010 "Forsaljning"
#IB 0 1910 1000.00
#RES 0 3010 -500.00
#VER A 1 20200105 "Kontant"
{
#TRANS 1910 {} 500.00
#TRANS 3010 {} -500.00
}
`

func mustParse(t *testing.T, s string) *ledger.Ledger {
	t.Helper()
	l, err := parser.ParseString(context.Background(), s)
	assert.NoError(t, err)
	return l
}

func TestCompareEqual(t *testing.T) {
	a := mustParse(t, base)
	b := mustParse(t, base)

	diffs, err := compare.Compare(a, b)
	assert.NoError(t, err)
	assert.Zero(t, len(diffs))
	assert.True(t, compare.Equal(a, b))
}

func TestCompareNilLedger(t *testing.T) {
	_, err := compare.Compare(nil, ledger.New())
	assert.IsError(t, err, compare.ErrNilLedger)

	_, err = compare.Compare(ledger.New(), nil)
	assert.IsError(t, err, compare.ErrNilLedger)

	assert.False(t, compare.Equal(nil, nil))
}

func TestCompareDifferences(t *testing.T) {
	tests := []struct {
		name   string
		modify func(l *ledger.Ledger)
		want   []string
	}{
		{
			name:   "CompanyName",
			modify: func(l *ledger.Ledger) { l.Company.Name = "Annat AB" },
			want:   []string{`company: name differs: "Exempelbolaget AB" != "Annat AB"`},
		},
		{
			name:   "SieType",
			modify: func(l *ledger.Ledger) { l.SieType = 3 },
			want:   []string{`SIE type differs: "4" != "3"`},
		},
		{
			name:   "AccountName",
			modify: func(l *ledger.Ledger) { l.Accounts["1910"].Name = "Kontanter" },
			want:   []string{`account 1910: name differs: "Kassa" != "Kontanter"`},
		},
		{
			name: "AccountMissingFromB",
			modify: func(l *ledger.Ledger) {
				delete(l.Accounts, "3010")
			},
			want: []string{"account 3010 missing from B"},
		},
		{
			name: "FiscalYearMissingFromA",
			modify: func(l *ledger.Ledger) {
				fy := l.FiscalYear(-1)
				fy.Start = ledger.MustParseDate("20190101")
				fy.End = ledger.MustParseDate("20191231")
			},
			want: []string{"fiscal year -1 missing from A"},
		},
		{
			name: "ValueAmount",
			modify: func(l *ledger.Ledger) {
				l.IB[0].Amount = decimal.RequireFromString("999.00")
			},
			want: []string{
				"#IB 0 1910 1000 missing from B",
				"#IB 0 1910 999 missing from A",
			},
		},
		{
			name: "VoucherRow",
			modify: func(l *ledger.Ledger) {
				l.Vouchers[0].Rows[0].Account = "1930"
			},
			want: []string{
				"voucher A 1 20200105 (2 rows) missing from B",
				"voucher A 1 20200105 (2 rows) missing from A",
			},
		},
		{
			name: "ObjectName",
			modify: func(l *ledger.Ledger) {
				l.DeclareObject(ledger.ObjectRef{Dimension: "1", Number: "100"}, "Forsaljning")
			},
			want: []string{"object 1:100 missing from A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustParse(t, base)
			b := mustParse(t, base)
			tt.modify(b)

			diffs, err := compare.Compare(a, b)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, diffs)
			assert.False(t, compare.Equal(a, b))
		})
	}
}

func TestCompareIgnoresOrder(t *testing.T) {
	a := mustParse(t, base+`#VER B 1 20200110 "Inkop"
{
#TRANS 3010 {} 200.00
#TRANS 1910 {} -200.00
}
`)
	b := mustParse(t, base+`#VER B 1 20200110 "Inkop"
{
#TRANS 1910 {} -200.00
#TRANS 3010 {} 200.00
}
`)
	b.Vouchers[0], b.Vouchers[1] = b.Vouchers[1], b.Vouchers[0]

	assert.True(t, compare.Equal(a, b))
}

func TestCompareRowsAsMultiset(t *testing.T) {
	twice := strings.Replace(base, "#TRANS 3010 {} -500.00", "#TRANS 3010 {} -250.00\n#TRANS 3010 {} -250.00", 1)
	once := strings.Replace(base, "#TRANS 3010 {} -500.00", "#TRANS 3010 {} -250.00\n#TRANS 3010 {} -250.00\n#TRANS 3010 {} 0", 1)

	a := mustParse(t, twice)
	b := mustParse(t, once)
	assert.False(t, compare.Equal(a, b))

	c := mustParse(t, twice)
	assert.True(t, compare.Equal(a, c))
}

func TestCompareIgnoresChecksum(t *testing.T) {
	a := mustParse(t, base)
	b := mustParse(t, base)
	b.Checksum = 1234

	assert.True(t, compare.Equal(a, b))
}
