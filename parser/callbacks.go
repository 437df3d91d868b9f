package parser

import "github.com/robinvdvleuten/sie/ledger"

// Event is an ordered list of handlers for one kind of parse event.
// Handlers run in the order they were subscribed.
type Event[T any] struct {
	handlers []func(T)
}

// Subscribe appends a handler.
func (e *Event[T]) Subscribe(fn func(T)) {
	e.handlers = append(e.handlers, fn)
}

// Fire calls every handler with v.
func (e *Event[T]) Fire(v T) {
	for _, fn := range e.handlers {
		fn(v)
	}
}

// Len returns the number of subscribed handlers.
func (e *Event[T]) Len() int {
	return len(e.handlers)
}

// Callbacks holds the events a parser fires while reading.
type Callbacks struct {
	Line    Event[*Record]
	Error   Event[error]
	Voucher Event[*ledger.Voucher]

	IB      Event[*ledger.PeriodValue]
	UB      Event[*ledger.PeriodValue]
	OIB     Event[*ledger.PeriodValue]
	OUB     Event[*ledger.PeriodValue]
	RES     Event[*ledger.PeriodValue]
	PSALDO  Event[*ledger.PeriodValue]
	PBUDGET Event[*ledger.PeriodValue]
}

// Value returns the period value event for token, or nil.
func (c *Callbacks) Value(token string) *Event[*ledger.PeriodValue] {
	switch token {
	case ledger.TokenIB:
		return &c.IB
	case ledger.TokenUB:
		return &c.UB
	case ledger.TokenOIB:
		return &c.OIB
	case ledger.TokenOUB:
		return &c.OUB
	case ledger.TokenRES:
		return &c.RES
	case ledger.TokenPSALDO:
		return &c.PSALDO
	case ledger.TokenPBUDGET:
		return &c.PBUDGET
	}
	return nil
}
