package cmd

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears values and Changed state that persist across invocations.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	})
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(args...)
	require.NoError(t, err, "command %v:\n%s", args, out)
	return out
}

func execCmd(args ...string) (string, error) {
	resetFlags(rootCmd.PersistentFlags())
	resetFlags(runCmd.Flags())
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// tempHome isolates config under a fresh HOME.
func tempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeZip(t *testing.T, dir string, files ...[2]string) string {
	t.Helper()
	p := filepath.Join(dir, "data.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, file := range files {
		w, err := zw.Create(file[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(file[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

const diabetes = "Pregnancies,Glucose,BMI,Outcome\n6,148,33.6,1\n1,85,,0\n8,183,23.3,1\n1,89,28.1,0\n1,89,28.1,0\n"

func TestCLI_RunWritesReportAndFigures(t *testing.T) {
	home := tempHome(t)
	zp := writeZip(t, home, [2]string{"diabetes.csv", diabetes}, [2]string{"README.txt", "about"})
	outDir := filepath.Join(home, "plots")

	out := runCLI(t, "run", zp, "-o", outDir, "--format", "svg", "--workers", "1", "--no-color")

	for _, want := range []string{
		"===== DATA PREVIEW =====",
		"===== Relationship with Outcome =====",
		"===== TREND & PATTERN INSIGHTS =====",
		"✓ Analyzed diabetes.csv (4 rows after cleaning)",
	} {
		assert.Contains(t, out, want)
	}
	// 4 histograms, heatmap, 4 box plots; no categorical columns.
	svgs, _ := filepath.Glob(filepath.Join(outDir, "*.svg"))
	assert.Len(t, svgs, 9)
	assert.FileExists(t, filepath.Join(outDir, "manifest.yaml"))
}

func TestCLI_RunTargetOverrideAndNoPlots(t *testing.T) {
	home := tempHome(t)
	zp := writeZip(t, home, [2]string{"d/diabetes.csv", diabetes})

	out := runCLI(t, "run", zp, "--no-plots", "--target", "Glucose", "--no-color", "-o", filepath.Join(home, "p"))
	assert.Contains(t, out, "===== Relationship with Glucose =====")
	assert.NoDirExists(t, filepath.Join(home, "p"))
}

func TestCLI_RunErrors(t *testing.T) {
	home := tempHome(t)
	zp := writeZip(t, home, [2]string{"notes.txt", "x"})
	_, err := execCmd("run", zp, "--no-plots")
	assert.Error(t, err, "archive without CSV entries")

	_, err = execCmd("run", filepath.Join(home, "missing.zip"))
	assert.Error(t, err, "missing archive")

	zp = writeZip(t, home, [2]string{"a.csv", "x\n1\n"})
	_, err = execCmd("run", zp, "--format", "gif")
	assert.Error(t, err, "unsupported format")

	_, err = execCmd("run", zp, "--dataset", "b.csv", "--no-plots")
	assert.Error(t, err, "unknown dataset")
}

func TestCLI_List(t *testing.T) {
	home := tempHome(t)
	zp := writeZip(t, home,
		[2]string{"train.csv", "a\n1\n"},
		[2]string{"notes.txt", "x"},
		[2]string{"sub/test.CSV", "a\n2\n"},
	)
	out := runCLI(t, "list", zp)
	for _, want := range []string{
		"- train.csv (4 bytes) [dataset 1: train.csv, default]",
		"- notes.txt (1 bytes)",
		"- sub/test.CSV (4 bytes) [dataset 2: test.CSV]",
	} {
		assert.Contains(t, out, want)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home := tempHome(t)
	runCLI(t, "config", "set", "workers", "2")
	runCLI(t, "config", "set", "targets", "Outcome,Class")
	assert.FileExists(t, filepath.Join(home, ".sct-eda", "config.yaml"))

	out := runCLI(t, "config", "show")
	assert.Contains(t, out, "workers: 2")
	assert.Contains(t, out, "targets: Outcome, Class")

	_, err := execCmd("config", "set", "workers", "zero")
	assert.Error(t, err, "non-numeric workers")
}
