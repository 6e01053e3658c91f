package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

// CorrelationMatrix computes pairwise Pearson r over rows where both columns
// are present. Pairs with fewer than two such rows or zero variance are NaN.
func CorrelationMatrix(t *dataset.Table) *CorrMatrix {
	cols := t.NumericColumns()
	n := len(cols)
	m := &CorrMatrix{Columns: make([]string, n), Values: make([][]float64, n)}
	for i, c := range cols {
		m.Columns[i] = c.Name
		m.Values[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			r := pearson(cols[a], cols[b])
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m
}

func pearson(x, y *dataset.Column) float64 {
	var xs, ys []float64
	for i := 0; i < x.Len(); i++ {
		if x.Valid[i] && y.Valid[i] {
			xs = append(xs, x.Num[i])
			ys = append(ys, y.Num[i])
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// TopPairs lists off-diagonal pairs by descending |r|, skipping NaN; limit <= 0 keeps all.
func (m *CorrMatrix) TopPairs(limit int) []PairCorr {
	var pairs []PairCorr
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := m.Values[i][j]
			if math.IsNaN(r) {
				continue
			}
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: r})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}
