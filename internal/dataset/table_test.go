package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New("sample",
		NewNumeric("n", []float64{1, 2, 0, 4}, []bool{true, true, false, true}),
		NewCategorical("c", []string{"red", "red", "", "blue"}, []bool{true, true, false, true}),
	)
	require.NoError(t, err)
	return tbl
}

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New("bad",
		NewNumeric("a", []float64{1, 2}, nil),
		NewNumeric("b", []float64{1}, nil),
	)
	require.Error(t, err)
}

func TestHeadAndCloneAreIndependent(t *testing.T) {
	tbl := sampleTable(t)
	head := tbl.Head(2)
	assert.Equal(t, 2, head.NumRows())
	assert.Equal(t, []string{"2", "red"}, head.Row(1))

	cp := tbl.Clone()
	cp.Columns[0].Num[0] = 99
	assert.Equal(t, 1.0, tbl.Columns[0].Num[0])

	assert.Equal(t, 4, tbl.Head(10).NumRows())
}

func TestKeepRowsPreservesGivenOrder(t *testing.T) {
	tbl := sampleTable(t)
	tbl.KeepRows([]int{3, 0})
	assert.Equal(t, []string{"4", "blue"}, tbl.Row(0))
	assert.Equal(t, []string{"1", "red"}, tbl.Row(1))
}

func TestColumnsByKind(t *testing.T) {
	tbl := sampleTable(t)
	require.Len(t, tbl.NumericColumns(), 1)
	require.Len(t, tbl.CategoricalColumns(), 1)
	assert.Equal(t, "float64", tbl.Columns[0].Kind.Dtype())
	assert.Equal(t, "object", tbl.Columns[1].Kind.Dtype())
	assert.Equal(t, []string{"red", "red", "blue"}, tbl.Columns[1].Strings())
}
