package gotable

import (
	"cmp"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ColumnType decides once per column how its values are ordered.
type ColumnType int

const (
	// ColumnText values are ordered naturally ("item9" before "item10").
	ColumnText ColumnType = iota
	// ColumnNumeric values are ordered by numeric value without tokenizing.
	ColumnNumeric
)

// Comparator orders two raw record values.
type Comparator func(a, b any) int

// Comparator returns the comparator for values of the column type.
func (t ColumnType) Comparator() Comparator {
	return func(a, b any) int {
		return t.sortKey(a).compare(t.sortKey(b))
	}
}

// sortKey is the ordering form of a value. Sorting computes it once per
// record.
type sortKey struct {
	number  float64
	numeric bool
	text    Key
}

func (t ColumnType) sortKey(v any) sortKey {
	if t == ColumnNumeric {
		if n, err := cast.ToFloat64E(v); err == nil {
			return sortKey{number: n, numeric: true}
		}
	}

	return sortKey{text: NaturalKey(cast.ToString(v))}
}

// compare puts values that are not numbers after every number and orders
// them naturally among themselves.
func (k sortKey) compare(other sortKey) int {
	switch {
	case k.numeric && other.numeric:
		return cmp.Compare(k.number, other.number)
	case k.numeric:
		return -1
	case other.numeric:
		return 1
	}

	return k.text.Compare(other.text)
}

// Column is a displayed column of a table.
type Column struct {
	// Name is the record key.
	Name string
	// Title is the header label. Defaults to the title-cased Name.
	Title string
	Type  ColumnType
}

func TextColumn(name string) Column {
	return Column{Name: name, Type: ColumnText}
}

func NumericColumn(name string) Column {
	return Column{Name: name, Type: ColumnNumeric}
}

// WithTitle returns the column with an explicit header label.
func (c Column) WithTitle(title string) Column {
	c.Title = title
	return c
}

// Label returns the header label.
func (c Column) Label() string {
	if c.Title != "" {
		return c.Title
	}

	return cases.Title(language.Und).String(c.Name)
}

// Value returns the display form of the column value of r.
func (c Column) Value(r Record) string {
	return cast.ToString(r[c.Name])
}

type Columns []Column

// Lookup finds a column by record key.
func (c Columns) Lookup(name string) (Column, bool) {
	return lo.Find(c, func(col Column) bool {
		return col.Name == name
	})
}

// Names returns the record keys in display order.
func (c Columns) Names() []string {
	return lo.Map(c, func(col Column, _ int) string {
		return col.Name
	})
}

// Type returns the column type of field. Fields that are not displayed are
// ordered as text.
func (c Columns) Type(field string) ColumnType {
	col, ok := c.Lookup(field)
	if !ok {
		return ColumnText
	}

	return col.Type
}

// Comparator returns the comparator for field.
func (c Columns) Comparator(field string) Comparator {
	return c.Type(field).Comparator()
}
