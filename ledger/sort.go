package ledger

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SortKeys sorts entity keys numerically where possible.
func SortKeys(keys []string) {
	slices.SortFunc(keys, compareKeys)
}

// SortDimensions sorts dimensions by number.
func SortDimensions(dims []*Dimension) {
	slices.SortFunc(dims, func(a, b *Dimension) int {
		return compareKeys(a.Number, b.Number)
	})
}

// SortedAccounts returns the accounts ordered by number.
func (l *Ledger) SortedAccounts() []*Account {
	keys := maps.Keys(l.Accounts)
	SortKeys(keys)

	accounts := make([]*Account, 0, len(keys))
	for _, k := range keys {
		accounts = append(accounts, l.Accounts[k])
	}
	return accounts
}

// SortedDimensions returns the dimensions ordered so that every parent comes
// before its children, and by number within the same depth.
func (l *Ledger) SortedDimensions() []*Dimension {
	dims := maps.Values(l.Dimensions)
	depth := make(map[string]int, len(dims))
	for _, d := range dims {
		depth[d.Number] = l.Depth(d.Number)
	}

	slices.SortFunc(dims, func(a, b *Dimension) int {
		if depth[a.Number] != depth[b.Number] {
			return depth[a.Number] - depth[b.Number]
		}
		return compareKeys(a.Number, b.Number)
	})
	return dims
}

// SortedObjects returns the objects of a dimension ordered by number.
func (d *Dimension) SortedObjects() []*Object {
	keys := maps.Keys(d.Objects)
	SortKeys(keys)

	objects := make([]*Object, 0, len(keys))
	for _, k := range keys {
		objects = append(objects, d.Objects[k])
	}
	return objects
}

// SortedFiscalYears returns the fiscal years from the current year backwards.
func (l *Ledger) SortedFiscalYears() []*FiscalYear {
	years := maps.Values(l.FiscalYears)
	slices.SortFunc(years, func(a, b *FiscalYear) int {
		return b.ID - a.ID
	})
	return years
}

func compareKeys(a, b string) int {
	switch {
	case a == b:
		return 0
	case lessKey(a, b):
		return -1
	default:
		return 1
	}
}
