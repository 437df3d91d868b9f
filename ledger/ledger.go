// Package ledger provides the in-memory model of a SIE bookkeeping export:
// company information, chart of accounts, dimensions and their objects,
// fiscal years, period values and vouchers.
//
// A Ledger is created empty by New (with the 19 standard dimensions seeded)
// and populated by the parser in one forward pass. The formatter and the
// compare package only read it. A Ledger is not safe for concurrent mutation.
//
// Entities are addressed by stable string keys. Period values and voucher rows
// hold the account number and object references, not pointers, so a reference
// can precede the declaration it points to:
//
//	l := ledger.New()
//	l.AddValue(&ledger.PeriodValue{Token: ledger.TokenIB, Account: "1910"})
//	acc, _ := l.LookupAccount("1910") // stub with an empty name
//	acc.Name = "Kassa"                 // enriched by a later declaration
package ledger

import (
	"strconv"
)

// Ledger is the root of the model and owns every entity below it.
type Ledger struct {
	Flag            int
	Format          string
	SieType         int
	Program         []string
	GenDate         *Date
	GenSign         string
	Note            string
	Company         Company
	AccountPlanType string
	Currency        string
	TaxYear         int
	PeriodCoverage  *Date
	Checksum        int64

	Accounts    map[string]*Account
	Dimensions  map[string]*Dimension
	FiscalYears map[int]*FiscalYear

	IB      []*PeriodValue
	UB      []*PeriodValue
	OIB     []*PeriodValue
	OUB     []*PeriodValue
	RES     []*PeriodValue
	PSALDO  []*PeriodValue
	PBUDGET []*PeriodValue

	Vouchers []*Voucher

	tempDimensions map[string]struct{}
}

// New creates an empty ledger with the standard dimensions.
func New() *Ledger {
	l := &Ledger{
		Accounts:       make(map[string]*Account),
		Dimensions:     make(map[string]*Dimension),
		FiscalYears:    make(map[int]*FiscalYear),
		tempDimensions: make(map[string]struct{}),
	}

	for i, name := range standardDimensions {
		number := strconv.Itoa(i + 1)
		d := newDimension(number, name)
		d.IsDefault = true
		l.Dimensions[number] = d
	}

	return l
}

// Account returns the account with the given number, creating a stub with an
// empty name if it does not exist yet.
func (l *Ledger) Account(number string) *Account {
	if acc, ok := l.Accounts[number]; ok {
		return acc
	}
	acc := &Account{Number: number}
	l.Accounts[number] = acc
	return acc
}

// LookupAccount returns an account by number
func (l *Ledger) LookupAccount(number string) (*Account, bool) {
	acc, ok := l.Accounts[number]
	return acc, ok
}

// FiscalYear returns the fiscal year with the given id, creating it when
// missing.
func (l *Ledger) FiscalYear(id int) *FiscalYear {
	if y, ok := l.FiscalYears[id]; ok {
		return y
	}
	y := &FiscalYear{ID: id}
	l.FiscalYears[id] = y
	return y
}

// HasValues reports whether any period value of the given kinds is present.
func (l *Ledger) HasValues(tokens ...string) bool {
	for _, t := range tokens {
		if len(l.Values(t)) > 0 {
			return true
		}
	}
	return false
}
