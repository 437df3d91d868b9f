package ledger

import (
	"fmt"
	"strconv"
)

// standardDimensions are the names of the reserved dimensions every ledger
// starts with. Dimension n is at index n-1.
var standardDimensions = [...]string{
	"Kostnadsställe",
	"Kostnadsbärare",
	"Reserverat",
	"Reserverat",
	"Reserverat",
	"Projekt",
	"Anställd",
	"Kund",
	"Leverantör",
	"Faktura",
	"Reserverat",
	"Reserverat",
	"Reserverat",
	"Reserverat",
	"Reserverat",
	"Reserverat",
	"Reserverat",
	"Reserverat",
	"Reserverat",
}

// Dimension is a classification axis (cost center, project, ...) holding
// objects. Parent is the key of the superior dimension for sub-dimensions;
// it is a reference only, the parent does not own its children.
type Dimension struct {
	Number    string
	Name      string
	IsDefault bool
	Parent    string
	Objects   map[string]*Object
}

func newDimension(number, name string) *Dimension {
	return &Dimension{
		Number:  number,
		Name:    name,
		Objects: make(map[string]*Object),
	}
}

// Object is a value within a dimension. Dimension is the key of the owning
// dimension.
type Object struct {
	Dimension string
	Number    string
	Name      string
}

// ObjectRef addresses an object by dimension and object number.
type ObjectRef struct {
	Dimension string
	Number    string
}

func (r ObjectRef) String() string {
	return fmt.Sprintf("%s:%s", r.Dimension, r.Number)
}

// CycleError is returned when setting a parent would make a dimension its own
// ancestor.
type CycleError struct {
	Dimension string
	Parent    string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dimension %s cannot have %s as parent: cycle", e.Dimension, e.Parent)
}

// Dimension returns the dimension with the given number.
func (l *Ledger) Dimension(number string) (*Dimension, bool) {
	d, ok := l.Dimensions[number]
	return d, ok
}

// DeclareDimension creates or updates a dimension from a declaration. A
// declared dimension is no longer a default nor a placeholder.
func (l *Ledger) DeclareDimension(number, name string) *Dimension {
	d, ok := l.Dimensions[number]
	if !ok {
		d = newDimension(number, name)
		l.Dimensions[number] = d
	}
	d.Name = name
	d.IsDefault = false
	delete(l.tempDimensions, number)
	return d
}

// EnsureDimension returns the dimension with the given number, creating a
// placeholder if it has not been declared yet.
func (l *Ledger) EnsureDimension(number string) *Dimension {
	if d, ok := l.Dimensions[number]; ok {
		return d
	}
	d := newDimension(number, "")
	l.Dimensions[number] = d
	l.tempDimensions[number] = struct{}{}
	return d
}

// EnsureObject returns the object addressed by ref, creating the object and
// its dimension as placeholders when needed.
func (l *Ledger) EnsureObject(ref ObjectRef) *Object {
	d := l.EnsureDimension(ref.Dimension)
	o, ok := d.Objects[ref.Number]
	if !ok {
		o = &Object{Dimension: d.Number, Number: ref.Number}
		d.Objects[ref.Number] = o
	}
	return o
}

// DeclareObject creates or updates an object from a declaration.
func (l *Ledger) DeclareObject(ref ObjectRef, name string) *Object {
	o := l.EnsureObject(ref)
	o.Name = name
	return o
}

// Object resolves a reference.
func (l *Ledger) Object(ref ObjectRef) (*Object, bool) {
	d, ok := l.Dimensions[ref.Dimension]
	if !ok {
		return nil, false
	}
	o, ok := d.Objects[ref.Number]
	return o, ok
}

// SetParent links a dimension to its superior dimension. The parent must
// exist and must not be the dimension itself or one of its descendants.
func (l *Ledger) SetParent(number, parent string) error {
	if _, ok := l.Dimensions[parent]; !ok {
		return fmt.Errorf("unknown parent dimension %s", parent)
	}
	if parent == number {
		return &CycleError{Dimension: number, Parent: parent}
	}
	for _, a := range l.Ancestors(parent) {
		if a == number {
			return &CycleError{Dimension: number, Parent: parent}
		}
	}

	d := l.EnsureDimension(number)
	d.Parent = parent
	return nil
}

// Ancestors returns the chain of parent keys above a dimension, nearest first.
func (l *Ledger) Ancestors(number string) []string {
	var chain []string
	seen := map[string]bool{number: true}

	d, ok := l.Dimensions[number]
	for ok && d.Parent != "" && !seen[d.Parent] {
		chain = append(chain, d.Parent)
		seen[d.Parent] = true
		d, ok = l.Dimensions[d.Parent]
	}
	return chain
}

// Children returns the dimensions whose parent is the given dimension,
// ordered by number.
func (l *Ledger) Children(number string) []*Dimension {
	var children []*Dimension
	for _, d := range l.Dimensions {
		if d.Parent == number {
			children = append(children, d)
		}
	}
	SortDimensions(children)
	return children
}

// TempDimensions returns the numbers of dimensions that were created as
// placeholders by a reference and never declared, in ascending order.
func (l *Ledger) TempDimensions() []string {
	nums := make([]string, 0, len(l.tempDimensions))
	for n := range l.tempDimensions {
		nums = append(nums, n)
	}
	SortKeys(nums)
	return nums
}

// Depth returns the number of ancestors of a dimension.
func (l *Ledger) Depth(number string) int {
	return len(l.Ancestors(number))
}

// lessKey orders numeric keys numerically and everything else lexically after
// them.
func lessKey(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		if ai != bi {
			return ai < bi
		}
		return a < b
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}
