package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

// Median returns the middle value of vals (mean of the two central values for
// even counts). ok is false when vals is empty.
func Median(vals []float64) (median float64, ok bool) {
	if len(vals) == 0 {
		return 0, false
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return quantile(cp, 0.5), true
}

// Mode returns the most frequent value; ties go to the value seen first.
func Mode(vals []string) (mode string, ok bool) {
	counts := ValueCounts(vals)
	if len(counts) == 0 {
		return "", false
	}
	return counts[0].Value, true
}

// CategoryCount is one row of a frequency table.
type CategoryCount struct {
	Value string
	Count int
}

// ValueCounts tallies vals, descending by count with ties in first-appearance order.
func ValueCounts(vals []string) []CategoryCount {
	idx := make(map[string]int)
	var out []CategoryCount
	for _, v := range vals {
		if i, ok := idx[v]; ok {
			out[i].Count++
			continue
		}
		idx[v] = len(out)
		out = append(out, CategoryCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ColumnCounts is the frequency table of one categorical column.
type ColumnCounts struct {
	Column string
	Counts []CategoryCount
}

// CategoricalCounts returns value counts for every categorical column of t.
func CategoricalCounts(t *dataset.Table) []ColumnCounts {
	var out []ColumnCounts
	for _, c := range t.CategoricalColumns() {
		out = append(out, ColumnCounts{Column: c.Name, Counts: ValueCounts(c.Strings())})
	}
	return out
}

// quantile interpolates linearly between closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Quantile is quantile over an unsorted copy of vals.
func Quantile(vals []float64, q float64) float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return quantile(cp, q)
}

// StdDev is the sample standard deviation (n-1); NaN below two values.
func StdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return math.NaN()
	}
	return stat.StdDev(vals, nil)
}
