// Package clean imputes missing values and removes duplicate rows in place.
package clean

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/analysis"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

// ErrAllMissing is returned when a column has no value to impute from.
var ErrAllMissing = errors.New("column has no non-missing values")

// Stats records what a Clean pass changed.
type Stats struct {
	Filled      map[string]int
	RowsDropped int
}

// FilledTotal sums cells filled across columns.
func (s Stats) FilledTotal() int {
	n := 0
	for _, v := range s.Filled {
		n += v
	}
	return n
}

// Clean fills numeric gaps with the median, categorical gaps with the mode,
// then drops duplicate rows.
func Clean(t *dataset.Table) (Stats, error) {
	st := Stats{Filled: make(map[string]int)}
	if err := FillNumericMedian(t, st.Filled); err != nil {
		return st, err
	}
	if err := FillCategoricalMode(t, st.Filled); err != nil {
		return st, err
	}
	st.RowsDropped = DropDuplicates(t)
	return st, nil
}

// FillNumericMedian sets missing numeric cells to their column median.
// filled, when non-nil, receives the number of cells set per column.
func FillNumericMedian(t *dataset.Table, filled map[string]int) error {
	for _, c := range t.NumericColumns() {
		miss := c.MissingCount()
		if miss == 0 {
			continue
		}
		med, ok := analysis.Median(c.Floats())
		if !ok {
			return fmt.Errorf("median %q: %w", c.Name, ErrAllMissing)
		}
		for i := range c.Num {
			if !c.Valid[i] {
				c.Num[i] = med
				c.Valid[i] = true
			}
		}
		if filled != nil {
			filled[c.Name] = miss
		}
	}
	return nil
}

// FillCategoricalMode sets missing categorical cells to their column's most
// frequent value. filled, when non-nil, receives the number of cells set per column.
func FillCategoricalMode(t *dataset.Table, filled map[string]int) error {
	for _, c := range t.CategoricalColumns() {
		miss := c.MissingCount()
		if miss == 0 {
			continue
		}
		mode, ok := analysis.Mode(c.Strings())
		if !ok {
			return fmt.Errorf("mode %q: %w", c.Name, ErrAllMissing)
		}
		for i := range c.Text {
			if !c.Valid[i] {
				c.Text[i] = mode
				c.Valid[i] = true
			}
		}
		if filled != nil {
			filled[c.Name] = miss
		}
	}
	return nil
}

// DropDuplicates removes rows equal to an earlier row across all columns,
// keeping first occurrences in order. Missing cells compare equal.
func DropDuplicates(t *dataset.Table) int {
	n := t.NumRows()
	seen := make(map[string]struct{}, n)
	keep := make([]int, 0, n)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.Reset()
		for _, c := range t.Columns {
			writeKey(&b, c, i)
		}
		k := b.String()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, i)
	}
	if len(keep) == n {
		return 0
	}
	t.KeepRows(keep)
	return n - len(keep)
}

// writeKey appends a length-prefixed cell encoding so no two distinct rows collide.
func writeKey(b *strings.Builder, c *dataset.Column, i int) {
	if !c.Valid[i] {
		b.WriteString("-;")
		return
	}
	var v string
	if c.Kind == dataset.Numeric {
		v = dataset.FormatFloat(c.Num[i])
	} else {
		v = c.Text[i]
	}
	fmt.Fprintf(b, "%d:%s;", len(v), v)
}
