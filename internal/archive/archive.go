// Package archive extracts CSV datasets from ZIP containers.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

var (
	// ErrNoCSV is returned when an archive holds no CSV entries.
	ErrNoCSV = errors.New("no CSV entries in archive")
	// ErrDatasetNotFound is returned when a named dataset is not in the archive.
	ErrDatasetNotFound = errors.New("dataset not found")
)

// Datasets maps entry base names to tables, preserving container order.
type Datasets struct {
	names  []string
	tables map[string]*dataset.Table
}

func (d *Datasets) put(name string, t *dataset.Table) {
	if d.tables == nil {
		d.tables = make(map[string]*dataset.Table)
	}
	if _, seen := d.tables[name]; !seen {
		d.names = append(d.names, name)
	}
	d.tables[name] = t
}

// Names returns dataset names in archive order.
func (d *Datasets) Names() []string { return append([]string(nil), d.names...) }

func (d *Datasets) Len() int { return len(d.names) }

func (d *Datasets) Get(name string) (*dataset.Table, bool) {
	t, ok := d.tables[name]
	return t, ok
}

// First returns the first dataset in archive order.
func (d *Datasets) First() (*dataset.Table, error) {
	if len(d.names) == 0 {
		return nil, ErrNoCSV
	}
	return d.tables[d.names[0]], nil
}

// Select returns the named dataset, or the first one when name is empty.
func (d *Datasets) Select(name string) (*dataset.Table, error) {
	if name == "" {
		return d.First()
	}
	if t, ok := d.tables[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrDatasetNotFound, name, strings.Join(d.names, ", "))
}

// IsCSV reports whether an entry name qualifies as a CSV dataset.
func IsCSV(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}

// LoadCSVs parses every CSV entry of the ZIP at zipPath. Any open or parse
// failure aborts the load.
func LoadCSVs(zipPath string, opt dataset.ParseOptions) (*Datasets, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	out := &Datasets{}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !IsCSV(f.Name) {
			continue
		}
		base := path.Base(f.Name)
		t, err := readEntry(f, base, opt)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name, err)
		}
		slog.Debug("loaded dataset", slog.String("entry", f.Name), slog.Int("rows", t.NumRows()), slog.Int("cols", t.NumCols()))
		out.put(base, t)
	}
	return out, nil
}

func readEntry(f *zip.File, name string, opt dataset.ParseOptions) (*dataset.Table, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return dataset.ParseCSV(rc, name, opt)
}

// EntryInfo describes one archive member.
type EntryInfo struct {
	Name  string
	Size  uint64
	IsDir bool
	IsCSV bool
}

// List returns every entry in container order without parsing any of them.
func List(zipPath string) ([]EntryInfo, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()
	out := make([]EntryInfo, 0, len(zr.File))
	for _, f := range zr.File {
		dir := f.FileInfo().IsDir()
		out = append(out, EntryInfo{
			Name:  f.Name,
			Size:  f.UncompressedSize64,
			IsDir: dir,
			IsCSV: !dir && IsCSV(f.Name),
		})
	}
	return out, nil
}
