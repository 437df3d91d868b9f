package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestEnsureObjectCreatesPlaceholders(t *testing.T) {
	l := New()

	o := l.EnsureObject(ObjectRef{Dimension: "20", Number: "A1"})
	assert.Equal(t, "20", o.Dimension)
	assert.Equal(t, "", o.Name)
	assert.Equal(t, []string{"20"}, l.TempDimensions())

	// Standard dimensions are never placeholders.
	l.EnsureObject(ObjectRef{Dimension: "1", Number: "100"})
	assert.Equal(t, []string{"20"}, l.TempDimensions())

	d := l.DeclareDimension("20", "Region")
	assert.Equal(t, "Region", d.Name)
	assert.False(t, d.IsDefault)
	assert.Equal(t, 0, len(l.TempDimensions()))

	// The object created by the reference survives the declaration.
	_, ok := l.Object(ObjectRef{Dimension: "20", Number: "A1"})
	assert.True(t, ok)
}

func TestDeclareObjectUpdatesName(t *testing.T) {
	l := New()

	l.EnsureObject(ObjectRef{Dimension: "1", Number: "100"})
	l.DeclareObject(ObjectRef{Dimension: "1", Number: "100"}, "Försäljning")

	o, ok := l.Object(ObjectRef{Dimension: "1", Number: "100"})
	assert.True(t, ok)
	assert.Equal(t, "Försäljning", o.Name)
}

func TestDeclareStandardDimensionClearsDefault(t *testing.T) {
	l := New()

	d := l.DeclareDimension("1", "Avdelning")
	assert.False(t, d.IsDefault)
	assert.Equal(t, "Avdelning", d.Name)
}

func TestSetParent(t *testing.T) {
	l := New()
	l.DeclareDimension("21", "Underprojekt")
	l.DeclareDimension("22", "Delprojekt")

	assert.NoError(t, l.SetParent("21", "6"))
	assert.NoError(t, l.SetParent("22", "21"))

	assert.Equal(t, []string{"21", "6"}, l.Ancestors("22"))
	assert.Equal(t, 2, l.Depth("22"))

	children := l.Children("6")
	assert.Equal(t, 1, len(children))
	assert.Equal(t, "21", children[0].Number)

	t.Run("Self", func(t *testing.T) {
		var cycle *CycleError
		assert.True(t, errors.As(l.SetParent("6", "6"), &cycle))
	})

	t.Run("Descendant", func(t *testing.T) {
		var cycle *CycleError
		assert.True(t, errors.As(l.SetParent("6", "22"), &cycle))
	})

	t.Run("UnknownParent", func(t *testing.T) {
		assert.Error(t, l.SetParent("21", "99"))
	})
}

func TestSortedDimensionsParentsFirst(t *testing.T) {
	l := New()
	l.DeclareDimension("30", "Top")
	l.DeclareDimension("20", "Child")
	assert.NoError(t, l.SetParent("20", "30"))

	var seen30 bool
	for _, d := range l.SortedDimensions() {
		if d.Number == "30" {
			seen30 = true
		}
		if d.Number == "20" {
			assert.True(t, seen30, "parent must come first")
		}
	}
}

func TestSortedObjects(t *testing.T) {
	l := New()
	for _, n := range []string{"10", "2", "B", "1"} {
		l.EnsureObject(ObjectRef{Dimension: "1", Number: n})
	}

	d, _ := l.Dimension("1")
	var got []string
	for _, o := range d.SortedObjects() {
		got = append(got, o.Number)
	}
	assert.Equal(t, []string{"1", "2", "10", "B"}, got)
}
