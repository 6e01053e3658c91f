package plots

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
	"gopkg.in/yaml.v3"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/utils"
)

// Formats supported by Render.
var Formats = []string{"png", "svg", "pdf"}

// RenderOptions controls where and how figures are written.
type RenderOptions struct {
	Dir    string
	Format string
	// Workers bounds concurrent renders; 1 renders strictly in plan order.
	Workers int
}

// Rendered records one written figure.
type Rendered struct {
	Title string `yaml:"title"`
	Kind  string `yaml:"kind"`
	Path  string `yaml:"path"`
}

// ValidFormat reports whether f is a supported image format.
func ValidFormat(f string) bool {
	for _, v := range Formats {
		if v == f {
			return true
		}
	}
	return false
}

// Render builds and saves every figure, returning paths in plan order.
func Render(ctx context.Context, figs []Figure, opt RenderOptions) ([]Rendered, error) {
	format := strings.ToLower(opt.Format)
	if format == "" {
		format = "png"
	}
	if !ValidFormat(format) {
		return nil, fmt.Errorf("unsupported image format %q (use %s)", opt.Format, strings.Join(Formats, "|"))
	}
	if err := utils.EnsureDir(opt.Dir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	workers := opt.Workers
	if workers < 1 {
		workers = 1
	}

	out := make([]Rendered, len(figs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range figs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			p, err := f.Build()
			if err != nil {
				return err
			}
			name := fmt.Sprintf("%02d_%s.%s", i+1, Slug(f.Title), format)
			path := filepath.Join(opt.Dir, name)
			if err := p.Save(f.Width, f.Height, path); err != nil {
				return fmt.Errorf("save %s: %w", name, err)
			}
			slog.Debug("rendered figure", slog.String("path", path), slog.Duration("took", time.Since(start)))
			out[i] = Rendered{Title: f.Title, Kind: f.Kind, Path: path}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Slug lower-cases s and joins its alphanumeric runs with underscores.
func Slug(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	if b.Len() == 0 {
		return "figure"
	}
	return b.String()
}

// Manifest indexes the figures of one run.
type Manifest struct {
	RunID     string     `yaml:"run_id"`
	Archive   string     `yaml:"archive"`
	Dataset   string     `yaml:"dataset"`
	Target    string     `yaml:"target,omitempty"`
	CreatedAt time.Time  `yaml:"created_at"`
	Figures   []Rendered `yaml:"figures"`
}

// WriteManifest saves m as manifest.yaml in dir and returns its path.
func WriteManifest(dir string, m Manifest) (string, error) {
	b, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	path := filepath.Join(dir, "manifest.yaml")
	if err := utils.SafeWriteFile(path, b); err != nil {
		return "", err
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
