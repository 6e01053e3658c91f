package dataset

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind is the inferred type of a column. It is decided once, at load time.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Dtype returns the pandas-style dtype label used in schema listings.
func (k Kind) Dtype() string {
	if k == Numeric {
		return "float64"
	}
	return "object"
}

var (
	// ErrDuplicateColumn is returned when a header names the same column twice.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrNoHeader is returned when a CSV source has no header row.
	ErrNoHeader = errors.New("missing header row")
)

// Column holds one named column. Num is populated for Numeric columns and Text
// for Categorical ones; Valid[i] is false when cell i is missing.
type Column struct {
	Name  string
	Kind  Kind
	Num   []float64
	Text  []string
	Valid []bool
}

// NewNumeric builds a numeric column; valid may be nil when nothing is missing.
func NewNumeric(name string, vals []float64, valid []bool) *Column {
	return &Column{Name: name, Kind: Numeric, Num: vals, Valid: fillValid(valid, len(vals))}
}

// NewCategorical builds a categorical column; valid may be nil when nothing is missing.
func NewCategorical(name string, vals []string, valid []bool) *Column {
	return &Column{Name: name, Kind: Categorical, Text: vals, Valid: fillValid(valid, len(vals))}
}

func fillValid(valid []bool, n int) []bool {
	if valid != nil {
		return valid
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

func (c *Column) Len() int { return len(c.Valid) }

func (c *Column) IsMissing(i int) bool { return !c.Valid[i] }

func (c *Column) MissingCount() int {
	n := 0
	for _, ok := range c.Valid {
		if !ok {
			n++
		}
	}
	return n
}

func (c *Column) NonMissingCount() int { return c.Len() - c.MissingCount() }

// Floats returns the non-missing values of a numeric column in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Num))
	for i, v := range c.Num {
		if c.Valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// Strings returns the non-missing values of a categorical column in row order.
func (c *Column) Strings() []string {
	out := make([]string, 0, len(c.Text))
	for i, v := range c.Text {
		if c.Valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// Format renders cell i for display; missing cells render as NaN.
func (c *Column) Format(i int) string {
	if !c.Valid[i] {
		return "NaN"
	}
	if c.Kind == Numeric {
		return FormatFloat(c.Num[i])
	}
	return c.Text[i]
}

// FormatFloat renders a float without trailing zeros.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *Column) clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind, Valid: append([]bool(nil), c.Valid...)}
	if c.Num != nil {
		out.Num = append([]float64(nil), c.Num...)
	}
	if c.Text != nil {
		out.Text = append([]string(nil), c.Text...)
	}
	return out
}

func (c *Column) keep(idx []int) {
	valid := make([]bool, len(idx))
	for j, i := range idx {
		valid[j] = c.Valid[i]
	}
	c.Valid = valid
	switch c.Kind {
	case Numeric:
		num := make([]float64, len(idx))
		for j, i := range idx {
			num[j] = c.Num[i]
		}
		c.Num = num
	case Categorical:
		text := make([]string, len(idx))
		for j, i := range idx {
			text[j] = c.Text[i]
		}
		c.Text = text
	}
}

// Table is an ordered set of uniquely named, equal-length columns.
type Table struct {
	Name    string
	Columns []*Column
	index   map[string]int
}

// New assembles a table, enforcing unique names and equal column lengths.
func New(name string, cols ...*Column) (*Table, error) {
	t := &Table{Name: name, index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		if len(t.Columns) > 0 && c.Len() != t.Columns[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), t.Columns[0].Len())
		}
		t.index[c.Name] = len(t.Columns)
		t.Columns = append(t.Columns, c)
	}
	return t, nil
}

func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

func (t *Table) NumCols() int { return len(t.Columns) }

func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.Columns[i], true
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Names returns column names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

func (t *Table) NumericColumns() []*Column { return t.ofKind(Numeric) }

func (t *Table) CategoricalColumns() []*Column { return t.ofKind(Categorical) }

func (t *Table) ofKind(k Kind) []*Column {
	var out []*Column
	for _, c := range t.Columns {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

// Row returns the display form of row i.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		out[j] = c.Format(i)
	}
	return out
}

// Head returns a copy of the first n rows.
func (t *Table) Head(n int) *Table {
	if n > t.NumRows() {
		n = t.NumRows()
	}
	if n < 0 {
		n = 0
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	out := t.Clone()
	out.KeepRows(idx)
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Columns: make([]*Column, len(t.Columns)), index: make(map[string]int, len(t.index))}
	for i, c := range t.Columns {
		out.Columns[i] = c.clone()
		out.index[c.Name] = i
	}
	return out
}

// KeepRows retains only the rows at idx, in the order given.
func (t *Table) KeepRows(idx []int) {
	for _, c := range t.Columns {
		c.keep(idx)
	}
}
