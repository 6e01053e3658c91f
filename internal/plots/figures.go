// Package plots builds and renders the EDA figures as image files.
package plots

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/analysis"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

// Figure kinds.
const (
	KindHistogram = "histogram"
	KindHeatmap   = "heatmap"
	KindCount     = "count"
	KindBox       = "box"
)

// Figure is one planned plot. Build must only read the table it captured.
type Figure struct {
	Title  string
	Kind   string
	Width  vg.Length
	Height vg.Length
	Build  func() (*plot.Plot, error)
}

// PlanOptions tunes which figures are planned.
type PlanOptions struct {
	// MaxCategories skips count plots for columns with more distinct values; 0 means unlimited.
	MaxCategories int
}

// Plan lists the figures for t in display order: distributions, the
// correlation heatmap, then target relationships when target is non-empty.
func Plan(t *dataset.Table, target string, opt PlanOptions) []Figure {
	var figs []Figure
	if t.NumRows() == 0 {
		return figs
	}
	numeric := t.NumericColumns()
	for _, c := range numeric {
		figs = append(figs, histogramFigure(c))
	}
	if len(numeric) > 1 {
		figs = append(figs, heatmapFigure(analysis.CorrelationMatrix(t)))
	}
	tc, ok := t.Column(target)
	if target == "" || !ok {
		return figs
	}
	groups := groupBy(tc)
	for _, c := range t.CategoricalColumns() {
		cats := appearanceOrder(c)
		if opt.MaxCategories > 0 && len(cats) > opt.MaxCategories {
			slog.Warn("skipping count plot", slog.String("column", c.Name), slog.Int("categories", len(cats)), slog.Int("max", opt.MaxCategories))
			continue
		}
		figs = append(figs, countFigure(c, cats, target, groups))
	}
	for _, c := range numeric {
		figs = append(figs, boxFigure(c, target, groups))
	}
	return figs
}

func histogramFigure(c *dataset.Column) Figure {
	vals := c.Floats()
	return Figure{
		Title:  fmt.Sprintf("Distribution of %s", c.Name),
		Kind:   KindHistogram,
		Width:  7 * vg.Inch,
		Height: 4 * vg.Inch,
		Build: func() (*plot.Plot, error) {
			p := plot.New()
			p.Title.Text = fmt.Sprintf("Distribution of %s", c.Name)
			p.X.Label.Text = c.Name
			p.Y.Label.Text = "Count"
			if len(vals) == 0 {
				return p, nil
			}
			h, err := plotter.NewHist(plotter.Values(vals), AutoBins(vals))
			if err != nil {
				return nil, fmt.Errorf("histogram %s: %w", c.Name, err)
			}
			h.FillColor = color.RGBA{R: 76, G: 114, B: 176, A: 160}
			p.Add(h)
			if k := NewKDE(vals); k != nil {
				scale := float64(len(vals)) * h.Width
				f := plotter.NewFunction(func(x float64) float64 { return k.Density(x) * scale })
				f.XMin, f.XMax = floats.Min(vals), floats.Max(vals)
				f.Samples = 200
				f.Color = color.RGBA{R: 31, G: 60, B: 120, A: 255}
				f.Width = vg.Points(1.5)
				p.Add(f)
			}
			return p, nil
		},
	}
}

// corrGrid lays the matrix out with its first column at the top row.
type corrGrid struct{ m *analysis.CorrMatrix }

func (g corrGrid) Dims() (c, r int) { n := len(g.m.Columns); return n, n }
func (g corrGrid) Z(c, r int) float64 {
	return g.m.Values[len(g.m.Columns)-1-r][c]
}
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

func heatmapFigure(m *analysis.CorrMatrix) Figure {
	return Figure{
		Title:  "Correlation Heatmap",
		Kind:   KindHeatmap,
		Width:  8 * vg.Inch,
		Height: 6 * vg.Inch,
		Build: func() (*plot.Plot, error) {
			grid := corrGrid{m: m}
			cm := moreland.SmoothBlueRed()
			cm.SetMax(1)
			cm.SetMin(-1)
			hm := plotter.NewHeatMap(grid, cm.Palette(255))
			hm.Min, hm.Max = -1, 1
			hm.NaN = color.Gray{Y: 220}

			p := plot.New()
			p.Title.Text = "Correlation Heatmap"
			p.Add(hm)

			n := len(m.Columns)
			var xys plotter.XYs
			var labels []string
			xt := make([]plot.Tick, n)
			yt := make([]plot.Tick, n)
			for i, name := range m.Columns {
				xt[i] = plot.Tick{Value: float64(i), Label: name}
				yt[i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
			}
			for r := 0; r < n; r++ {
				for c := 0; c < n; c++ {
					xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
					z := grid.Z(c, r)
					if math.IsNaN(z) {
						labels = append(labels, "nan")
					} else {
						labels = append(labels, fmt.Sprintf("%.2f", z))
					}
				}
			}
			lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
			if err != nil {
				return nil, fmt.Errorf("heatmap labels: %w", err)
			}
			for i := range lbl.TextStyle {
				lbl.TextStyle[i].XAlign = text.XCenter
				lbl.TextStyle[i].YAlign = text.YCenter
			}
			p.Add(lbl)
			p.X.Tick.Marker = plot.ConstantTicks(xt)
			p.Y.Tick.Marker = plot.ConstantTicks(yt)
			rotate(p)
			return p, nil
		},
	}
}

func countFigure(c *dataset.Column, cats []string, target string, g targetGroups) Figure {
	title := fmt.Sprintf("%s by %s", target, c.Name)
	return Figure{
		Title:  title,
		Kind:   KindCount,
		Width:  7 * vg.Inch,
		Height: 4 * vg.Inch,
		Build: func() (*plot.Plot, error) {
			pos := make(map[string]int, len(cats))
			for i, v := range cats {
				pos[v] = i
			}
			counts := make([]plotter.Values, len(g.labels))
			for i := range counts {
				counts[i] = make(plotter.Values, len(cats))
			}
			for row, gi := range g.of {
				if gi < 0 || !c.Valid[row] {
					continue
				}
				counts[gi][pos[c.Text[row]]]++
			}

			p := plot.New()
			p.Title.Text = title
			p.X.Label.Text = c.Name
			p.Y.Label.Text = "count"
			p.Legend.Top = true
			p.Legend.Left = false

			w := vg.Points(30) / vg.Length(len(g.labels))
			for i, vals := range counts {
				bc, err := plotter.NewBarChart(vals, w)
				if err != nil {
					return nil, fmt.Errorf("count %s: %w", c.Name, err)
				}
				bc.Color = plotutil.Color(i)
				bc.LineStyle.Width = 0
				bc.Offset = vg.Length(float64(i)-float64(len(g.labels)-1)/2) * w
				p.Add(bc)
				p.Legend.Add(fmt.Sprintf("%s=%s", target, g.labels[i]), bc)
			}
			if len(cats) > 0 {
				p.NominalX(cats...)
			}
			rotate(p)
			return p, nil
		},
	}
}

func boxFigure(c *dataset.Column, target string, g targetGroups) Figure {
	title := fmt.Sprintf("%s vs %s", c.Name, target)
	return Figure{
		Title:  title,
		Kind:   KindBox,
		Width:  7 * vg.Inch,
		Height: 4 * vg.Inch,
		Build: func() (*plot.Plot, error) {
			groups := make([]plotter.Values, len(g.labels))
			for row, gi := range g.of {
				if gi >= 0 && c.Valid[row] {
					groups[gi] = append(groups[gi], c.Num[row])
				}
			}
			p := plot.New()
			p.Title.Text = title
			p.X.Label.Text = target
			p.Y.Label.Text = c.Name
			for i, vals := range groups {
				if len(vals) == 0 {
					continue
				}
				b, err := plotter.NewBoxPlot(vg.Points(40), float64(i), vals)
				if err != nil {
					return nil, fmt.Errorf("box %s: %w", c.Name, err)
				}
				b.FillColor = plotutil.Color(i)
				p.Add(b)
			}
			if len(g.labels) > 0 {
				p.NominalX(g.labels...)
			}
			return p, nil
		},
	}
}

func rotate(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
}

// targetGroups assigns every row to a distinct target value; -1 marks a missing target.
type targetGroups struct {
	labels []string
	of     []int
}

// groupBy orders numeric targets ascending and categorical targets by first appearance.
func groupBy(tc *dataset.Column) targetGroups {
	var labels []string
	if tc.Kind == dataset.Numeric {
		seen := map[float64]bool{}
		var vals []float64
		for i, v := range tc.Num {
			if tc.Valid[i] && !seen[v] {
				seen[v] = true
				vals = append(vals, v)
			}
		}
		sort.Float64s(vals)
		for _, v := range vals {
			labels = append(labels, dataset.FormatFloat(v))
		}
	} else {
		labels = appearanceOrder(tc)
	}
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	g := targetGroups{labels: labels, of: make([]int, tc.Len())}
	for i := range g.of {
		if gi, ok := idx[tc.Format(i)]; ok {
			g.of[i] = gi
		} else {
			g.of[i] = -1
		}
	}
	return g
}

func appearanceOrder(c *dataset.Column) []string {
	seen := map[string]bool{}
	var out []string
	for i := 0; i < c.Len(); i++ {
		if !c.Valid[i] {
			continue
		}
		v := c.Format(i)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
