package clean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/analysis"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

func parse(t *testing.T, src string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.ParseCSV(strings.NewReader(src), "t.csv", dataset.DefaultParseOptions())
	require.NoError(t, err)
	return tbl
}

func TestFillNumericMedian(t *testing.T) {
	tbl := parse(t, "n\n1\n2\nNA\n4\n")
	filled := map[string]int{}
	require.NoError(t, FillNumericMedian(tbl, filled))
	n, _ := tbl.Column("n")
	assert.Equal(t, []float64{1, 2, 2, 4}, n.Num)
	assert.Equal(t, 0, n.MissingCount())
	assert.Equal(t, 1, filled["n"])
}

func TestFillCategoricalMode(t *testing.T) {
	tbl := parse(t, "c\nred\nred\nNA\nblue\n")
	require.NoError(t, FillCategoricalMode(tbl, nil))
	c, _ := tbl.Column("c")
	assert.Equal(t, []string{"red", "red", "red", "blue"}, c.Text)
	assert.Equal(t, 0, c.MissingCount())
}

func TestDropDuplicatesKeepsFirstInOrder(t *testing.T) {
	tbl := parse(t, "a,b\n1,x\n2,y\n1,x\n3,z\n2,y\n1,y\n")
	dropped := DropDuplicates(tbl)
	assert.Equal(t, 2, dropped)
	require.Equal(t, 4, tbl.NumRows())
	assert.Equal(t, []string{"1", "x"}, tbl.Row(0))
	assert.Equal(t, []string{"2", "y"}, tbl.Row(1))
	assert.Equal(t, []string{"3", "z"}, tbl.Row(2))
	assert.Equal(t, []string{"1", "y"}, tbl.Row(3))
}

func TestDropDuplicatesTreatsMissingAsEqual(t *testing.T) {
	tbl := parse(t, "a,b\n1,\n1,\n1,NA\n")
	assert.Equal(t, 2, DropDuplicates(tbl))
	assert.Equal(t, 1, tbl.NumRows())
}

func TestDropDuplicatesKeyHasNoSeparatorCollisions(t *testing.T) {
	tbl := parse(t, "a,b\n\"x;\",y\nx,\";y\"\n")
	assert.Equal(t, 0, DropDuplicates(tbl))
}

func TestCleanLeavesNoMissingAndIsIdempotent(t *testing.T) {
	src := "Survived,Age,Sex,Embarked\n" +
		"0,22,male,S\n" +
		"1,,female,C\n" +
		"1,26,female,\n" +
		"0,22,male,S\n" +
		"1,35,,S\n"
	tbl := parse(t, src)

	st, err := Clean(tbl)
	require.NoError(t, err)
	assert.Equal(t, 1, st.RowsDropped)
	assert.Equal(t, 3, st.FilledTotal())
	assert.Equal(t, 0, analysis.TotalMissing(analysis.MissingCounts(tbl)))

	age, _ := tbl.Column("Age")
	assert.Equal(t, []float64{22, 24, 26, 35}, age.Num)

	once := tbl.Clone()
	st2, err := Clean(tbl)
	require.NoError(t, err)
	assert.Equal(t, 0, st2.RowsDropped)
	assert.Equal(t, 0, st2.FilledTotal())
	for i := 0; i < once.NumRows(); i++ {
		assert.Equal(t, once.Row(i), tbl.Row(i))
	}
}

func TestCleanRejectsAllMissingColumn(t *testing.T) {
	_, err := Clean(parse(t, "a,b\n1,\n2,\n"))
	assert.ErrorIs(t, err, ErrAllMissing)
	assert.Contains(t, err.Error(), `"b"`)
}
