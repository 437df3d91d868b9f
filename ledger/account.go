package ledger

// AccountType represents the kind of an account as declared by its type code.
type AccountType int

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeAssets
	AccountTypeLiabilities
	AccountTypeExpenses
	AccountTypeIncome
)

// String returns the string representation of the account type
func (t AccountType) String() string {
	switch t {
	case AccountTypeAssets:
		return "Assets"
	case AccountTypeLiabilities:
		return "Liabilities"
	case AccountTypeExpenses:
		return "Expenses"
	case AccountTypeIncome:
		return "Income"
	default:
		return "Unknown"
	}
}

// Account is an entry in the chart of accounts.
//
// Type holds the raw type code (T, S, K or I) so that it survives a
// round-trip unchanged; use Kind for the interpreted value. SRU holds the
// classification codes in the order they were declared, duplicates included.
type Account struct {
	Number string
	Name   string
	Unit   string
	Type   string
	SRU    []string
}

// Kind interprets the account's type code.
func (a *Account) Kind() AccountType {
	switch a.Type {
	case "T":
		return AccountTypeAssets
	case "S":
		return AccountTypeLiabilities
	case "K":
		return AccountTypeExpenses
	case "I":
		return AccountTypeIncome
	default:
		return AccountTypeUnknown
	}
}

// FiscalYear is a numbered accounting year. Id 0 is the current year, -1 the
// previous one and so on.
type FiscalYear struct {
	ID    int
	Start *Date
	End   *Date
}

// Company holds the identification and address of the reporting company.
type Company struct {
	Name      string
	Code      string
	OrgType   string
	SNI       string
	OrgNumber string
	AcqNumber string
	ActNumber string
	Address   Address
}

// Address is the postal contact block of a company.
type Address struct {
	Contact string
	Street  string
	Postal  string
	Phone   string
}

// IsZero reports whether no address part is set.
func (a Address) IsZero() bool {
	return a == Address{}
}
