package ledger

import (
	"github.com/shopspring/decimal"
)

// Record tags that produce period values, vouchers and voucher rows. They are
// stored on the model so the writer can reproduce the exact tag per list.
const (
	TokenIB      = "#IB"
	TokenUB      = "#UB"
	TokenOIB     = "#OIB"
	TokenOUB     = "#OUB"
	TokenRES     = "#RES"
	TokenPSALDO  = "#PSALDO"
	TokenPBUDGET = "#PBUDGET"

	TokenVER    = "#VER"
	TokenTRANS  = "#TRANS"
	TokenRTRANS = "#RTRANS"
	TokenBTRANS = "#BTRANS"
)

// PeriodTokens lists the period value kinds in output order.
var PeriodTokens = []string{
	TokenIB,
	TokenUB,
	TokenOIB,
	TokenOUB,
	TokenRES,
	TokenPSALDO,
	TokenPBUDGET,
}

// HasPeriod reports whether values of the given kind carry a period.
func HasPeriod(token string) bool {
	return token == TokenPSALDO || token == TokenPBUDGET
}

// HasObjects reports whether values of the given kind are written with an
// object tuple.
func HasObjects(token string) bool {
	return token != TokenIB && token != TokenUB
}

// PeriodValue is a single amount observation for an account in a fiscal year
// and, for saldo and budget values, a period (YYYYMM).
type PeriodValue struct {
	Account  string
	YearNr   int
	Period   int
	Amount   decimal.Decimal
	Quantity decimal.Decimal
	Objects  []ObjectRef
	Token    string
}

// Values returns the period values of the given kind.
func (l *Ledger) Values(token string) []*PeriodValue {
	switch token {
	case TokenIB:
		return l.IB
	case TokenUB:
		return l.UB
	case TokenOIB:
		return l.OIB
	case TokenOUB:
		return l.OUB
	case TokenRES:
		return l.RES
	case TokenPSALDO:
		return l.PSALDO
	case TokenPBUDGET:
		return l.PBUDGET
	default:
		return nil
	}
}

// AddValue appends a period value to the list matching its token. The
// referenced account is created as a stub when unknown.
func (l *Ledger) AddValue(v *PeriodValue) {
	l.Account(v.Account)

	switch v.Token {
	case TokenIB:
		l.IB = append(l.IB, v)
	case TokenUB:
		l.UB = append(l.UB, v)
	case TokenOIB:
		l.OIB = append(l.OIB, v)
	case TokenOUB:
		l.OUB = append(l.OUB, v)
	case TokenRES:
		l.RES = append(l.RES, v)
	case TokenPSALDO:
		l.PSALDO = append(l.PSALDO, v)
	case TokenPBUDGET:
		l.PBUDGET = append(l.PBUDGET, v)
	}
}
