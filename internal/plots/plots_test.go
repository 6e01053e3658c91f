package plots

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

const titanic = `PassengerId,Survived,Pclass,Sex,Age,Embarked
1,0,3,male,22,S
2,1,1,female,38,C
3,1,3,female,26,S
4,1,1,female,35,S
5,0,3,male,35,S
6,0,3,male,28,Q
7,0,1,male,54,S
8,0,3,male,2,S
`

func parse(t *testing.T, src string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.ParseCSV(strings.NewReader(src), "train.csv", dataset.DefaultParseOptions())
	require.NoError(t, err)
	return tbl
}

func titles(figs []Figure) []string {
	out := make([]string, len(figs))
	for i, f := range figs {
		out[i] = f.Title
	}
	return out
}

func TestPlanWithTarget(t *testing.T) {
	figs := Plan(parse(t, titanic), "Survived", PlanOptions{})
	assert.Equal(t, []string{
		"Distribution of PassengerId",
		"Distribution of Survived",
		"Distribution of Pclass",
		"Distribution of Age",
		"Correlation Heatmap",
		"Survived by Sex",
		"Survived by Embarked",
		"PassengerId vs Survived",
		"Survived vs Survived",
		"Pclass vs Survived",
		"Age vs Survived",
	}, titles(figs))
}

func TestPlanWithoutTargetSkipsRelationships(t *testing.T) {
	figs := Plan(parse(t, titanic), "", PlanOptions{})
	require.Len(t, figs, 5)
	for _, f := range figs {
		assert.NotEqual(t, KindCount, f.Kind)
		assert.NotEqual(t, KindBox, f.Kind)
	}
}

func TestPlanSingleNumericHasNoHeatmap(t *testing.T) {
	figs := Plan(parse(t, "x,label\n1,a\n2,b\n"), "", PlanOptions{})
	assert.Equal(t, []string{"Distribution of x"}, titles(figs))
}

func TestPlanMaxCategories(t *testing.T) {
	figs := Plan(parse(t, titanic), "Survived", PlanOptions{MaxCategories: 2})
	assert.NotContains(t, titles(figs), "Survived by Embarked")
	assert.Contains(t, titles(figs), "Survived by Sex")
}

func TestGroupByOrdersNumericTargets(t *testing.T) {
	c := dataset.NewNumeric("Outcome", []float64{1, 0, 1, 0}, []bool{true, true, false, true})
	g := groupBy(c)
	assert.Equal(t, []string{"0", "1"}, g.labels)
	assert.Equal(t, []int{1, 0, -1, 0}, g.of)

	s := dataset.NewCategorical("Class", []string{"b", "a", "b"}, nil)
	assert.Equal(t, []string{"b", "a"}, groupBy(s).labels)
}

func TestAutoBins(t *testing.T) {
	assert.Equal(t, 1, AutoBins([]float64{3, 3, 3}))
	assert.Equal(t, 1, AutoBins([]float64{3}))
	// n=8: Sturges width 7/4, FD width 2*3.5/2; the narrower Sturges wins.
	assert.Equal(t, 4, AutoBins([]float64{1, 2, 3, 4, 5, 6, 7, 8}))
}

func TestKDEIntegratesToOne(t *testing.T) {
	k := NewKDE([]float64{1, 2, 2, 3, 7})
	require.NotNil(t, k)
	area := quad.Fixed(k.Density, -50, 60, 500, nil, 0)
	assert.InDelta(t, 1.0, area, 1e-3)

	assert.Nil(t, NewKDE([]float64{4, 4, 4}))
	assert.Nil(t, NewKDE([]float64{4}))
	assert.False(t, math.IsNaN(k.Bandwidth()))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "distribution_of_age", Slug("Distribution of Age"))
	assert.Equal(t, "survived_by_sex", Slug("  Survived by  Sex!"))
	assert.Equal(t, "figure", Slug("***"))
}

func TestRenderWritesFilesInPlanOrder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	figs := Plan(parse(t, titanic), "Survived", PlanOptions{})

	out, err := Render(context.Background(), figs, RenderOptions{Dir: dir, Format: "png", Workers: 4})
	require.NoError(t, err)
	require.Len(t, out, len(figs))
	for i, r := range out {
		assert.Equal(t, figs[i].Title, r.Title)
		info, err := os.Stat(r.Path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Equal(t, filepath.Join(dir, "01_distribution_of_passengerid.png"), out[0].Path)

	m := Manifest{RunID: "run-1", Archive: "titanic.zip", Dataset: "train.csv", Target: "Survived", Figures: out}
	mp, err := WriteManifest(dir, m)
	require.NoError(t, err)
	back, err := ReadManifest(mp)
	require.NoError(t, err)
	assert.Equal(t, "train.csv", back.Dataset)
	assert.Len(t, back.Figures, len(out))
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := Render(context.Background(), nil, RenderOptions{Dir: t.TempDir(), Format: "bmp"})
	require.Error(t, err)
}

func TestRenderStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	figs := Plan(parse(t, titanic), "", PlanOptions{})
	_, err := Render(ctx, figs, RenderOptions{Dir: t.TempDir(), Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
