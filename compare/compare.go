// Package compare reports the differences between two ledgers.
//
// Keyed entities (accounts, dimensions with their objects and fiscal years)
// are compared key by key. Period values and vouchers are compared without
// regard to order: every item of one ledger must have an equal item in the
// other, checked in both directions so that an item missing from either side
// is reported on its own.
package compare

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/sie/ledger"
)

// ErrNilLedger is returned when either ledger is nil.
var ErrNilLedger = errors.New("compare: nil ledger")

// Compare returns the differences between a and b in a fixed order: header
// fields, fiscal years, dimensions, accounts, period values, vouchers. An
// empty result means the ledgers are equivalent.
func Compare(a, b *ledger.Ledger) ([]string, error) {
	if a == nil || b == nil {
		return nil, ErrNilLedger
	}

	d := &diff{}
	d.header(a, b)
	d.fiscalYears(a, b)
	d.dimensions(a, b)
	d.accounts(a, b)
	for _, token := range ledger.PeriodTokens {
		d.values(a.Values(token), b.Values(token))
	}
	d.vouchers(a.Vouchers, b.Vouchers)
	return d.out, nil
}

// Equal reports whether a and b are equivalent.
func Equal(a, b *ledger.Ledger) bool {
	out, err := Compare(a, b)
	return err == nil && len(out) == 0
}

type diff struct {
	out []string
}

func (d *diff) addf(format string, args ...any) {
	d.out = append(d.out, fmt.Sprintf(format, args...))
}

// field records a difference in a named field.
func (d *diff) field(scope, name string, a, b any) {
	if a == b {
		return
	}
	if scope == "" {
		d.addf("%s differs: %q != %q", name, fmt.Sprint(a), fmt.Sprint(b))
		return
	}
	d.addf("%s: %s differs: %q != %q", scope, name, fmt.Sprint(a), fmt.Sprint(b))
}

func (d *diff) header(a, b *ledger.Ledger) {
	d.field("", "format", a.Format, b.Format)
	d.field("", "SIE type", a.SieType, b.SieType)
	d.field("", "program", strings.Join(a.Program, " "), strings.Join(b.Program, " "))
	d.field("", "generated", a.GenDate.String(), b.GenDate.String())
	d.field("", "generated by", a.GenSign, b.GenSign)
	d.field("", "note", a.Note, b.Note)
	d.field("", "currency", a.Currency, b.Currency)
	d.field("", "tax year", a.TaxYear, b.TaxYear)
	d.field("", "period coverage", a.PeriodCoverage.String(), b.PeriodCoverage.String())
	d.field("", "account plan type", a.AccountPlanType, b.AccountPlanType)

	ca, cb := a.Company, b.Company
	d.field("company", "name", ca.Name, cb.Name)
	d.field("company", "code", ca.Code, cb.Code)
	d.field("company", "organization type", ca.OrgType, cb.OrgType)
	d.field("company", "SNI code", ca.SNI, cb.SNI)
	d.field("company", "organization number", ca.OrgNumber, cb.OrgNumber)
	d.field("company", "acquisition number", ca.AcqNumber, cb.AcqNumber)
	d.field("company", "activity number", ca.ActNumber, cb.ActNumber)
	d.field("company", "address", ca.Address, cb.Address)
}

func (d *diff) fiscalYears(a, b *ledger.Ledger) {
	ids := maps.Keys(a.FiscalYears)
	for id := range b.FiscalYears {
		if _, ok := a.FiscalYears[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	for _, id := range ids {
		fa, aok := a.FiscalYears[id]
		fb, bok := b.FiscalYears[id]
		scope := fmt.Sprintf("fiscal year %d", id)
		switch {
		case !bok:
			d.addf("%s missing from B", scope)
		case !aok:
			d.addf("%s missing from A", scope)
		default:
			d.field(scope, "start", fa.Start.String(), fb.Start.String())
			d.field(scope, "end", fa.End.String(), fb.End.String())
		}
	}
}

func (d *diff) dimensions(a, b *ledger.Ledger) {
	for _, key := range unionKeys(a.Dimensions, b.Dimensions) {
		da, aok := a.Dimensions[key]
		db, bok := b.Dimensions[key]
		scope := "dimension " + key
		switch {
		case !bok:
			d.addf("%s missing from B", scope)
			continue
		case !aok:
			d.addf("%s missing from A", scope)
			continue
		}

		d.field(scope, "name", da.Name, db.Name)
		d.field(scope, "parent", da.Parent, db.Parent)

		for _, num := range unionKeys(da.Objects, db.Objects) {
			oa, aok := da.Objects[num]
			ob, bok := db.Objects[num]
			oscope := fmt.Sprintf("object %s:%s", key, num)
			switch {
			case !bok:
				d.addf("%s missing from B", oscope)
			case !aok:
				d.addf("%s missing from A", oscope)
			default:
				d.field(oscope, "name", oa.Name, ob.Name)
			}
		}
	}
}

func (d *diff) accounts(a, b *ledger.Ledger) {
	for _, key := range unionKeys(a.Accounts, b.Accounts) {
		aa, aok := a.Accounts[key]
		ab, bok := b.Accounts[key]
		scope := "account " + key
		switch {
		case !bok:
			d.addf("%s missing from B", scope)
			continue
		case !aok:
			d.addf("%s missing from A", scope)
			continue
		}

		d.field(scope, "name", aa.Name, ab.Name)
		d.field(scope, "unit", aa.Unit, ab.Unit)
		d.field(scope, "type", aa.Type, ab.Type)
		if !slices.Equal(aa.SRU, ab.SRU) {
			d.addf("%s: SRU codes differ: %v != %v", scope, aa.SRU, ab.SRU)
		}
	}
}

func (d *diff) values(a, b []*ledger.PeriodValue) {
	for _, v := range a {
		if !slices.ContainsFunc(b, func(w *ledger.PeriodValue) bool { return valuesEqual(v, w) }) {
			d.addf("%s missing from B", describeValue(v))
		}
	}
	for _, v := range b {
		if !slices.ContainsFunc(a, func(w *ledger.PeriodValue) bool { return valuesEqual(v, w) }) {
			d.addf("%s missing from A", describeValue(v))
		}
	}
}

func (d *diff) vouchers(a, b []*ledger.Voucher) {
	for _, v := range a {
		if !slices.ContainsFunc(b, func(w *ledger.Voucher) bool { return vouchersEqual(v, w) }) {
			d.addf("%s missing from B", describeVoucher(v))
		}
	}
	for _, v := range b {
		if !slices.ContainsFunc(a, func(w *ledger.Voucher) bool { return vouchersEqual(v, w) }) {
			d.addf("%s missing from A", describeVoucher(v))
		}
	}
}

func valuesEqual(a, b *ledger.PeriodValue) bool {
	return a.Token == b.Token &&
		a.Account == b.Account &&
		a.YearNr == b.YearNr &&
		a.Period == b.Period &&
		a.Amount.Equal(b.Amount) &&
		a.Quantity.Equal(b.Quantity) &&
		slices.Equal(a.Objects, b.Objects)
}

func vouchersEqual(a, b *ledger.Voucher) bool {
	if a.Series != b.Series || a.Number != b.Number || a.Text != b.Text ||
		a.Token != b.Token || !a.Date.Equal(b.Date) {
		return false
	}
	return rowsEqual(a.Rows, b.Rows)
}

// rowsEqual compares rows as multisets: every row of a is matched to a
// distinct equal row of b.
func rowsEqual(a, b []*ledger.Row) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ra := range a {
		found := false
		for i, rb := range b {
			if !used[i] && rowEqual(ra, rb) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func rowEqual(a, b *ledger.Row) bool {
	return a.Account == b.Account &&
		a.Amount.Equal(b.Amount) &&
		a.Sign == b.Sign &&
		a.Date.Equal(b.Date) &&
		a.Quantity.Equal(b.Quantity) &&
		slices.Equal(a.Objects, b.Objects)
}

func describeValue(v *ledger.PeriodValue) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s %d", v.Token, v.YearNr)
	if ledger.HasPeriod(v.Token) {
		fmt.Fprintf(&buf, " %d", v.Period)
	}
	fmt.Fprintf(&buf, " %s", v.Account)
	if len(v.Objects) > 0 {
		refs := make([]string, len(v.Objects))
		for i, ref := range v.Objects {
			refs[i] = ref.String()
		}
		fmt.Fprintf(&buf, " {%s}", strings.Join(refs, " "))
	}
	fmt.Fprintf(&buf, " %s", v.Amount)
	return buf.String()
}

func describeVoucher(v *ledger.Voucher) string {
	return fmt.Sprintf("voucher %s %s %s (%d rows)", v.Series, v.Number, v.Date, len(v.Rows))
}

// unionKeys returns the keys of both maps, sorted.
func unionKeys[V any](a, b map[string]V) []string {
	keys := maps.Keys(a)
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	ledger.SortKeys(keys)
	return keys
}
