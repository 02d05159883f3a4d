package data

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Kind is the storage type of a column.
type Kind int

const (
	Numeric Kind = iota
	Text
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "text"
}

// Column holds one named column. Numeric columns use NaN for missing values.
type Column struct {
	Name   string
	Source string // header the column was read under, before normalization
	Kind   Kind
	Nums   []float64
	Strs   []string
	raw    []string
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Nums)
	}
	return len(c.Strs)
}

// Raw returns the value of row i as originally read, falling back to a
// formatted value for columns that were built in memory.
func (c *Column) Raw(i int) string {
	if c.raw != nil {
		return c.raw[i]
	}
	if c.Kind == Text {
		return c.Strs[i]
	}
	return FormatFloat(c.Nums[i])
}

// Table is an in-memory, column-oriented dataset.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

var ErrLength = errors.New("data: column length does not match table")

// NewTable returns an empty table with a fixed row count.
func NewTable(rows int) *Table {
	return &Table{index: map[string]int{}, rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t == nil || t.rows == 0 }

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// IsNumeric reports whether the named column exists and is numeric.
func (t *Table) IsNumeric(name string) bool {
	c, ok := t.Column(name)
	return ok && c.Kind == Numeric
}

// NumericColumns returns the names of numeric columns in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, c := range t.cols {
		if c.Kind == Numeric {
			out = append(out, c.Name)
		}
	}
	return out
}

// Floats returns a copy of a numeric column.
func (t *Table) Floats(name string) ([]float64, bool) {
	c, ok := t.Column(name)
	if !ok || c.Kind != Numeric {
		return nil, false
	}
	out := make([]float64, len(c.Nums))
	copy(out, c.Nums)
	return out, true
}

// Strings returns a column rendered as strings.
func (t *Table) Strings(name string) ([]string, bool) {
	c, ok := t.Column(name)
	if !ok {
		return nil, false
	}
	out := make([]string, t.rows)
	for i := range out {
		if c.Kind == Text {
			out[i] = c.Strs[i]
		} else {
			out[i] = FormatFloat(c.Nums[i])
		}
	}
	return out, true
}

// Set adds the column or replaces an existing column with the same name.
func (t *Table) Set(c *Column) error {
	if c.Len() != t.rows {
		return fmt.Errorf("%w: %q has %d values, table has %d rows", ErrLength, c.Name, c.Len(), t.rows)
	}
	if c.Source == "" {
		c.Source = c.Name
	}
	if i, ok := t.index[c.Name]; ok {
		t.cols[i] = c
		return nil
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// SetNumeric adds or replaces a numeric column.
func (t *Table) SetNumeric(name string, vals []float64) error {
	return t.Set(&Column{Name: name, Kind: Numeric, Nums: vals})
}

// SetText adds or replaces a text column.
func (t *Table) SetText(name string, vals []string) error {
	return t.Set(&Column{Name: name, Kind: Text, Strs: vals})
}

// Select returns a new table holding only the given rows, in order.
func (t *Table) Select(rows []int) *Table {
	out := NewTable(len(rows))
	for _, c := range t.cols {
		nc := &Column{Name: c.Name, Source: c.Source, Kind: c.Kind}
		if c.Kind == Numeric {
			nc.Nums = make([]float64, len(rows))
			for i, r := range rows {
				nc.Nums[i] = c.Nums[r]
			}
		} else {
			nc.Strs = make([]string, len(rows))
			for i, r := range rows {
				nc.Strs[i] = c.Strs[r]
			}
		}
		if c.raw != nil {
			nc.raw = make([]string, len(rows))
			for i, r := range rows {
				nc.raw[i] = c.raw[r]
			}
		}
		out.index[nc.Name] = len(out.cols)
		out.cols = append(out.cols, nc)
	}
	return out
}

// Head returns the first n rows, or the whole table when it is shorter.
func (t *Table) Head(n int) *Table {
	if n >= t.rows {
		n = t.rows
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return t.Select(rows)
}

// Row returns row i keyed by column name. Missing numeric values are nil.
func (t *Table) Row(i int) map[string]any {
	out := make(map[string]any, len(t.cols))
	for _, c := range t.cols {
		if c.Kind == Text {
			out[c.Name] = c.Strs[i]
			continue
		}
		if v := c.Nums[i]; !math.IsNaN(v) {
			out[c.Name] = v
		} else {
			out[c.Name] = nil
		}
	}
	return out
}

// FormatFloat renders integral values without a fractional part and NaN as "".
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
