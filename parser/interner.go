package parser

// Interner keeps one copy of strings that repeat throughout a file.
//
// Tags and account numbers repeat on nearly every line of a large file:
// every #TRANS row of every voucher carries both. Interning them lets the
// ledger share one string per account instead of one per row.
type Interner struct {
	pool map[string]string
}

// NewInterner creates an interner with room for capacity strings.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical copy of s.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// Reset clears the pool so strings of a previous file are not kept alive.
func (i *Interner) Reset() {
	clear(i.pool)
}
