// Package pipeline runs the five EDA stages over one archive.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/analysis"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/archive"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/clean"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/export"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/plots"
)

// Options configures a Run.
type Options struct {
	Archive string
	// Dataset selects a CSV by base name; empty picks the first one.
	Dataset string
	Parse   dataset.ParseOptions

	SampleRows int
	Targets    []string
	NoColor    bool

	OutputDir     string
	ImageFormat   string
	Workers       int
	MaxCategories int
	NoPlots       bool

	// XLSXPath, when set, also writes the cleaned table to a workbook.
	XLSXPath string
}

// Result summarizes a completed run.
type Result struct {
	RunID    string
	Dataset  string
	Datasets []string
	Target   string
	Rows     int
	Cleaning clean.Stats
	Figures  []plots.Rendered
	Manifest string
	XLSX     string
}

// Run loads the archive, cleans the selected dataset, and writes the report to w
// and figures to opt.OutputDir. The first failing stage aborts the run.
func Run(ctx context.Context, opt Options, w io.Writer) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	log := slog.With(slog.String("run_id", res.RunID))

	sets, err := archive.LoadCSVs(opt.Archive, opt.Parse)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res.Datasets = sets.Names()
	t, err := sets.Select(opt.Dataset)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	res.Dataset = t.Name
	log.Debug("dataset selected", slog.String("dataset", t.Name), slog.Int("available", sets.Len()),
		slog.Int("rows", t.NumRows()), slog.Int("columns", t.NumCols()))

	p := analysis.NewPrinter(w, opt.NoColor)
	p.Banner("DATA PREVIEW")
	p.Preview(t.Head(opt.SampleRows))
	p.Banner("DATA INFO")
	p.Info(analysis.Schema(t))
	p.Banner("MISSING VALUES")
	p.Missing(analysis.MissingCounts(t))

	st, err := clean.Clean(t)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}
	res.Cleaning = st
	res.Rows = t.NumRows()
	log.Debug("cleaned", slog.Int("filled", st.FilledTotal()), slog.Int("dropped", st.RowsDropped))

	p.Banner("AFTER CLEANING — MISSING VALUES")
	p.Missing(analysis.MissingCounts(t))
	p.Banner("NUMERIC SUMMARY")
	p.Describe(analysis.Describe(t))
	p.Banner("CATEGORICAL SUMMARY")
	for _, cc := range analysis.CategoricalCounts(t) {
		p.ValueCounts(cc)
	}

	targets := opt.Targets
	if targets == nil {
		targets = analysis.DefaultTargets
	}
	res.Target, _ = analysis.DetectTarget(t, targets)

	if !opt.NoPlots {
		figs := plots.Plan(t, res.Target, plots.PlanOptions{MaxCategories: opt.MaxCategories})
		res.Figures, err = plots.Render(ctx, figs, plots.RenderOptions{
			Dir:     opt.OutputDir,
			Format:  opt.ImageFormat,
			Workers: opt.Workers,
		})
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		res.Manifest, err = plots.WriteManifest(opt.OutputDir, plots.Manifest{
			RunID:     res.RunID,
			Archive:   opt.Archive,
			Dataset:   res.Dataset,
			Target:    res.Target,
			CreatedAt: time.Now().UTC(),
			Figures:   res.Figures,
		})
		if err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
	}

	if res.Target != "" {
		p.Banner(fmt.Sprintf("Relationship with %s", res.Target))
		p.Bullets(relationshipLines(res.Figures, opt.NoPlots))
	}

	if opt.XLSXPath != "" {
		if err := export.WriteXLSX(opt.XLSXPath, t); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		res.XLSX = opt.XLSXPath
	}

	p.Banner("TREND & PATTERN INSIGHTS")
	p.Bullets(insights(t, res, opt))
	log.Debug("run complete", slog.Duration("took", time.Since(start)))
	return res, nil
}

func relationshipLines(figs []plots.Rendered, noPlots bool) []string {
	if noPlots {
		return []string{"plots disabled"}
	}
	var out []string
	for _, f := range figs {
		if f.Kind == plots.KindCount || f.Kind == plots.KindBox {
			out = append(out, fmt.Sprintf("%s -> %s", f.Title, f.Path))
		}
	}
	if len(out) == 0 {
		out = append(out, "no relationship plots")
	}
	return out
}

func insights(t *dataset.Table, res *Result, opt Options) []string {
	out := []string{
		fmt.Sprintf("Checked missing values & handled them (%d cells filled, %d duplicate rows dropped)",
			res.Cleaning.FilledTotal(), res.Cleaning.RowsDropped),
		"Generated numeric & categorical summaries",
	}
	if opt.NoPlots {
		out = append(out, "Plots disabled")
	} else {
		out = append(out, fmt.Sprintf("Visualized distributions (%d figures in %s)", len(res.Figures), opt.OutputDir))
	}
	if len(t.NumericColumns()) > 1 {
		if top := analysis.CorrelationMatrix(t).TopPairs(1); len(top) > 0 {
			out = append(out, fmt.Sprintf("Correlation matrix shows strongest relationship: %s ~ %s (r=%.2f)",
				top[0].A, top[0].B, top[0].R))
		}
	}
	if res.Target != "" {
		out = append(out, fmt.Sprintf("Relationship plots reveal how features vary across %s", res.Target))
	}
	if res.XLSX != "" {
		out = append(out, fmt.Sprintf("Cleaned data exported to %s", res.XLSX))
	}
	return out
}
