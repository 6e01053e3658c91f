// Package export writes the cleaned dataset and its summaries to a workbook.
package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/analysis"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

// Sheet names, in workbook order.
const (
	SheetData        = "data"
	SheetDescribe    = "describe"
	SheetValueCounts = "value_counts"
)

// WriteXLSX saves t, its numeric description, and the categorical value
// counts to path. Missing cells are left empty.
func WriteXLSX(path string, t *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetData); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, s := range []string{SheetDescribe, SheetValueCounts} {
		if _, err := f.NewSheet(s); err != nil {
			return fmt.Errorf("new sheet %s: %w", s, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	w := sheetWriter{f: f, bold: bold}
	if err := w.data(t); err != nil {
		return err
	}
	if err := w.describe(analysis.Describe(t)); err != nil {
		return err
	}
	if err := w.valueCounts(analysis.CategoricalCounts(t)); err != nil {
		return err
	}
	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

type sheetWriter struct {
	f    *excelize.File
	bold int
}

func (w sheetWriter) row(sheet string, r int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, r, err)
	}
	return nil
}

func (w sheetWriter) header(sheet string, names []string) error {
	vals := make([]any, len(names))
	for i, n := range names {
		vals[i] = n
	}
	if err := w.row(sheet, 1, vals); err != nil {
		return err
	}
	return w.f.SetRowStyle(sheet, 1, 1, w.bold)
}

func (w sheetWriter) data(t *dataset.Table) error {
	if err := w.header(SheetData, t.Names()); err != nil {
		return err
	}
	for i := 0; i < t.NumRows(); i++ {
		vals := make([]any, t.NumCols())
		for j, c := range t.Columns {
			switch {
			case c.IsMissing(i):
				vals[j] = nil
			case c.Kind == dataset.Numeric:
				vals[j] = c.Num[i]
			default:
				vals[j] = c.Text[i]
			}
		}
		if err := w.row(SheetData, i+2, vals); err != nil {
			return err
		}
	}
	return nil
}

func (w sheetWriter) describe(d *analysis.Description) error {
	head := append([]string{"column"}, analysis.DescribeRows...)
	if err := w.header(SheetDescribe, head); err != nil {
		return err
	}
	for i, s := range d.Columns {
		vals := []any{s.Name}
		for _, v := range s.Values() {
			if math.IsNaN(v) {
				vals = append(vals, nil)
			} else {
				vals = append(vals, v)
			}
		}
		if err := w.row(SheetDescribe, i+2, vals); err != nil {
			return err
		}
	}
	return nil
}

func (w sheetWriter) valueCounts(counts []analysis.ColumnCounts) error {
	if err := w.header(SheetValueCounts, []string{"column", "value", "count"}); err != nil {
		return err
	}
	r := 2
	for _, cc := range counts {
		for _, vc := range cc.Counts {
			if err := w.row(SheetValueCounts, r, []any{cc.Column, vc.Value, vc.Count}); err != nil {
				return err
			}
			r++
		}
	}
	return nil
}
