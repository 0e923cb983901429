// Package dataset provides the row-aligned, column-typed table that flows from
// the warehouse fetch through the filter to the chart and table renderers.
package dataset

import (
	"fmt"
	"time"
)

// Type is the native storage of a column.
type Type int

const (
	// TypeText stores strings.
	TypeText Type = iota
	// TypeFloat stores float64 numbers.
	TypeFloat
	// TypeTime stores time.Time values.
	TypeTime
	// TypeCategory stores strings drawn from a closed set.
	TypeCategory
)

// String returns the string representation of a Type.
func (t Type) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeFloat:
		return "float"
	case TypeTime:
		return "time"
	case TypeCategory:
		return "category"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Column is a named, typed sequence of values. A nil value is null.
// Non-null values are string for TypeText and TypeCategory, float64 for
// TypeFloat and time.Time for TypeTime.
type Column struct {
	Name   string
	Type   Type
	Values []any
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	return len(c.Values)
}

// clone returns a copy of the column with its own value slice.
func (c Column) clone() Column {
	values := make([]any, len(c.Values))
	copy(values, c.Values)
	return Column{Name: c.Name, Type: c.Type, Values: values}
}

// Dataset is an ordered collection of named columns with equal row counts.
// A Dataset is treated as immutable; operations return new datasets.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New builds a dataset, rejecting duplicate names and misaligned columns.
func New(cols ...Column) (*Dataset, error) {
	ds := &Dataset{
		columns: make([]Column, len(cols)),
		index:   make(map[string]int, len(cols)),
	}
	for i, col := range cols {
		if _, dup := ds.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		if i == 0 {
			ds.rows = col.Len()
		} else if col.Len() != ds.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, col.Len(), ds.rows)
		}
		ds.index[col.Name] = i
		ds.columns[i] = col
	}
	return ds, nil
}

// MustNew is like New but panics on error. Intended for literals in tests.
func MustNew(cols ...Column) *Dataset {
	ds, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return ds
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	if d == nil {
		return 0
	}
	return d.rows
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int {
	if d == nil {
		return 0
	}
	return len(d.columns)
}

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in order. Callers must not modify the values.
func (d *Dataset) Columns() []Column {
	if d == nil {
		return nil
	}
	return d.columns
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	if d == nil {
		return Column{}, false
	}
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Row returns the values of row i across all columns.
func (d *Dataset) Row(i int) []any {
	row := make([]any, len(d.columns))
	for c, col := range d.columns {
		row[c] = col.Values[i]
	}
	return row
}

// Clone returns a deep copy of the dataset's column slices.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	cols := make([]Column, len(d.columns))
	for i, c := range d.columns {
		cols[i] = c.clone()
	}
	return d.with(cols)
}

// Take returns a dataset containing only the given rows, in the given order.
func (d *Dataset) Take(rows []int) *Dataset {
	cols := make([]Column, len(d.columns))
	for i, c := range d.columns {
		values := make([]any, len(rows))
		for j, r := range rows {
			values[j] = c.Values[r]
		}
		cols[i] = Column{Name: c.Name, Type: c.Type, Values: values}
	}
	out := d.with(cols)
	out.rows = len(rows)
	return out
}

// replace returns a dataset with column i swapped for col (same name and length).
func (d *Dataset) replace(i int, col Column) *Dataset {
	cols := make([]Column, len(d.columns))
	copy(cols, d.columns)
	cols[i] = col
	return d.with(cols)
}

func (d *Dataset) with(cols []Column) *Dataset {
	index := make(map[string]int, len(d.index))
	for k, v := range d.index {
		index[k] = v
	}
	return &Dataset{columns: cols, index: index, rows: d.rows}
}

// Text builds a text column. Empty strings are kept as values.
func Text(name string, values ...string) Column {
	return Column{Name: name, Type: TypeText, Values: box(values)}
}

// Category builds a categorical column.
func Category(name string, values ...string) Column {
	return Column{Name: name, Type: TypeCategory, Values: box(values)}
}

// Float builds a numeric column.
func Float(name string, values ...float64) Column {
	return Column{Name: name, Type: TypeFloat, Values: box(values)}
}

// Time builds a temporal column.
func Time(name string, values ...time.Time) Column {
	return Column{Name: name, Type: TypeTime, Values: box(values)}
}

// Nullable builds a column of the given type from raw values; nil entries are nulls.
func Nullable(name string, typ Type, values ...any) Column {
	v := make([]any, len(values))
	copy(v, values)
	return Column{Name: name, Type: typ, Values: v}
}

func box[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
