package analysis

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

// Printer writes the textual EDA report, one bannered section at a time.
type Printer struct {
	w      io.Writer
	banner *color.Color
}

// NewPrinter returns a Printer writing to w. Banners follow color's terminal
// detection unless noColor is set.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	b := color.New(color.FgCyan, color.Bold)
	if noColor {
		b.DisableColor()
	}
	return &Printer{w: w, banner: b}
}

// Banner prints a section header.
func (p *Printer) Banner(title string) {
	fmt.Fprint(p.w, "\n")
	p.banner.Fprintf(p.w, "===== %s =====", title)
	fmt.Fprint(p.w, "\n\n")
}

func (p *Printer) table(header []string, rows [][]string) {
	tw := tablewriter.NewWriter(p.w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	tw.AppendBulk(rows)
	tw.Render()
}

// Preview prints the rows of head with a leading row index.
func (p *Printer) Preview(head *dataset.Table) {
	header := append([]string{""}, head.Names()...)
	rows := make([][]string, head.NumRows())
	for i := range rows {
		rows[i] = append([]string{strconv.Itoa(i)}, head.Row(i)...)
	}
	p.table(header, rows)
}

// Info prints the schema listing.
func (p *Printer) Info(info *Info) {
	fmt.Fprintf(p.w, "Table: %s\n", info.Name)
	last := info.Rows - 1
	if last < 0 {
		last = 0
	}
	fmt.Fprintf(p.w, "Index: %d entries, 0 to %d\n", info.Rows, last)
	fmt.Fprintf(p.w, "Data columns (total %d columns):\n", len(info.Columns))
	rows := make([][]string, len(info.Columns))
	for i, c := range info.Columns {
		rows[i] = []string{strconv.Itoa(i), c.Name, fmt.Sprintf("%d non-null", c.NonNull), c.Kind.Dtype()}
	}
	p.table([]string{"#", "Column", "Non-Null Count", "Dtype"}, rows)
	fmt.Fprint(p.w, "dtypes:")
	for i, kc := range info.KindCounts() {
		if i > 0 {
			fmt.Fprint(p.w, ",")
		}
		fmt.Fprintf(p.w, " %s(%d)", kc.Value, kc.Count)
	}
	fmt.Fprint(p.w, "\n")
}

// Missing prints per-column missing counts.
func (p *Printer) Missing(counts []MissingCount) {
	rows := make([][]string, len(counts))
	for i, m := range counts {
		rows[i] = []string{m.Column, strconv.Itoa(m.Missing)}
	}
	p.table([]string{"Column", "Missing"}, rows)
}

// Describe prints statistics as rows and numeric columns as columns.
func (p *Printer) Describe(d *Description) {
	if len(d.Columns) == 0 {
		fmt.Fprintln(p.w, "(no numeric columns)")
		return
	}
	header := []string{""}
	for _, c := range d.Columns {
		header = append(header, c.Name)
	}
	rows := make([][]string, len(DescribeRows))
	for i, label := range DescribeRows {
		rows[i] = []string{label}
	}
	for _, c := range d.Columns {
		for i, v := range c.Values() {
			rows[i] = append(rows[i], FormatStat(v))
		}
	}
	p.table(header, rows)
}

// ValueCounts prints one frequency table.
func (p *Printer) ValueCounts(cc ColumnCounts) {
	fmt.Fprintf(p.w, "\nValue counts for %s:\n", cc.Column)
	rows := make([][]string, len(cc.Counts))
	for i, kv := range cc.Counts {
		rows[i] = []string{kv.Value, strconv.Itoa(kv.Count)}
	}
	p.table([]string{cc.Column, "count"}, rows)
}

// Bullets prints a bulleted list.
func (p *Printer) Bullets(lines []string) {
	for _, l := range lines {
		fmt.Fprintf(p.w, "• %s\n", l)
	}
}

// FormatStat renders a statistic with six decimals, or NaN.
func FormatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
