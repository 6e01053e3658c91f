package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

// DescribeRows are the statistic labels of a Description, in display order.
var DescribeRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// NumSummary holds descriptive statistics for one numeric column.
type NumSummary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Values returns the statistics in DescribeRows order.
func (s NumSummary) Values() []float64 {
	return []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max}
}

// Description is the numeric summary of a table, one entry per numeric column.
type Description struct {
	Columns []NumSummary
}

// Describe summarizes every numeric column over its non-missing values.
// Statistics of an empty column are NaN.
func Describe(t *dataset.Table) *Description {
	d := &Description{}
	for _, c := range t.NumericColumns() {
		d.Columns = append(d.Columns, summarize(c.Name, c.Floats()))
	}
	return d
}

func summarize(name string, vals []float64) NumSummary {
	s := NumSummary{Name: name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s.Mean = stat.Mean(sorted, nil)
	s.Std = StdDev(sorted)
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// ColumnInfo is one schema row: inferred type and non-missing count.
type ColumnInfo struct {
	Name    string
	Kind    dataset.Kind
	NonNull int
}

// Info describes the table schema.
type Info struct {
	Name    string
	Rows    int
	Columns []ColumnInfo
}

// KindCounts tallies columns per dtype label, in first-seen order.
func (i *Info) KindCounts() []CategoryCount {
	labels := make([]string, len(i.Columns))
	for j, c := range i.Columns {
		labels[j] = c.Kind.Dtype()
	}
	return ValueCounts(labels)
}

// Schema builds the Info for t.
func Schema(t *dataset.Table) *Info {
	info := &Info{Name: t.Name, Rows: t.NumRows()}
	for _, c := range t.Columns {
		info.Columns = append(info.Columns, ColumnInfo{Name: c.Name, Kind: c.Kind, NonNull: c.NonMissingCount()})
	}
	return info
}

// MissingCount is the number of missing cells in one column.
type MissingCount struct {
	Column  string
	Missing int
}

// MissingCounts returns the missing-cell count of every column in table order.
func MissingCounts(t *dataset.Table) []MissingCount {
	out := make([]MissingCount, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = MissingCount{Column: c.Name, Missing: c.MissingCount()}
	}
	return out
}

// TotalMissing sums counts.
func TotalMissing(counts []MissingCount) int {
	n := 0
	for _, m := range counts {
		n += m.Missing
	}
	return n
}
