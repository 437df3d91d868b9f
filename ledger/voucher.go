package ledger

import (
	"github.com/shopspring/decimal"
)

// DefaultBalanceIgnore lists the row kinds left out of the balance check:
// removed rows no longer count and added rows are repeated as normal rows.
var DefaultBalanceIgnore = []string{TokenBTRANS, TokenRTRANS}

// Voucher is a journal entry: a dated batch of rows that balance to zero.
type Voucher struct {
	Series  string
	Number  string
	Date    *Date
	Text    string
	RegDate *Date
	Sign    string
	Token   string
	Rows    []*Row
}

// Row is a single transaction line of a voucher. Token tells normal, added
// and removed rows apart.
type Row struct {
	Account  string
	Objects  []ObjectRef
	Amount   decimal.Decimal
	Date     *Date
	Text     string
	Quantity decimal.Decimal
	Sign     string
	Token    string
}

// AddRow appends a row. A row without a date takes the voucher date.
func (v *Voucher) AddRow(r *Row) {
	if r.Date == nil {
		r.Date = v.Date
	}
	v.Rows = append(v.Rows, r)
}

// Balance returns the sum of all row amounts whose token is not ignored.
func (v *Voucher) Balance(ignore []string) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range v.Rows {
		if ignored(r.Token, ignore) {
			continue
		}
		sum = sum.Add(r.Amount)
	}
	return sum
}

// IsBalanced reports whether the counted rows sum to zero.
func (v *Voucher) IsBalanced(ignore []string) bool {
	return v.Balance(ignore).IsZero()
}

func ignored(token string, ignore []string) bool {
	for _, t := range ignore {
		if t == token {
			return true
		}
	}
	return false
}

// AddVoucher appends a closed voucher. Accounts referenced by its rows are
// created as stubs when unknown.
func (l *Ledger) AddVoucher(v *Voucher) {
	for _, r := range v.Rows {
		l.Account(r.Account)
	}
	l.Vouchers = append(l.Vouchers, v)
}
