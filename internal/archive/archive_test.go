package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
)

type entry struct {
	name string
	body string
}

func writeZip(t *testing.T, entries ...entry) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "data.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestLoadCSVsMatchesSuffixCaseInsensitively(t *testing.T) {
	p := writeZip(t,
		entry{"a.CSV", "x,y\n1,2\n"},
		entry{"b.txt", "not a table"},
		entry{"c.csv", "k\nv\n"},
	)
	ds, err := LoadCSVs(p, dataset.DefaultParseOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.CSV", "c.csv"}, ds.Names())
	assert.Equal(t, 2, ds.Len())

	_, ok := ds.Get("b.txt")
	assert.False(t, ok)

	first, err := ds.First()
	require.NoError(t, err)
	assert.Equal(t, "a.CSV", first.Name)
}

func TestLoadCSVsKeysByBaseNameInContainerOrder(t *testing.T) {
	p := writeZip(t,
		entry{"nested/dir/zeta.csv", "a\n1\n"},
		entry{"alpha.csv", "a\n2\n"},
	)
	ds, err := LoadCSVs(p, dataset.DefaultParseOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta.csv", "alpha.csv"}, ds.Names())
}

func TestSelect(t *testing.T) {
	p := writeZip(t, entry{"train.csv", "a\n1\n"}, entry{"test.csv", "a\n2\n"})
	ds, err := LoadCSVs(p, dataset.DefaultParseOptions())
	require.NoError(t, err)

	tbl, err := ds.Select("test.csv")
	require.NoError(t, err)
	assert.Equal(t, "test.csv", tbl.Name)

	tbl, err = ds.Select("")
	require.NoError(t, err)
	assert.Equal(t, "train.csv", tbl.Name)

	_, err = ds.Select("gender_submission.csv")
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestEmptyArchiveHasNoDataset(t *testing.T) {
	p := writeZip(t, entry{"readme.md", "# hi"})
	ds, err := LoadCSVs(p, dataset.DefaultParseOptions())
	require.NoError(t, err)
	_, err = ds.First()
	assert.ErrorIs(t, err, ErrNoCSV)
}

func TestLoadCSVsFailures(t *testing.T) {
	_, err := LoadCSVs(filepath.Join(t.TempDir(), "missing.zip"), dataset.DefaultParseOptions())
	require.Error(t, err)

	corrupt := filepath.Join(t.TempDir(), "corrupt.zip")
	require.NoError(t, os.WriteFile(corrupt, []byte("definitely not a zip"), 0o644))
	_, err = LoadCSVs(corrupt, dataset.DefaultParseOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open archive")

	bad := writeZip(t, entry{"bad.csv", "a,b\n1,2,3\n"})
	_, err = LoadCSVs(bad, dataset.DefaultParseOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse bad.csv")
}

func TestList(t *testing.T) {
	p := writeZip(t, entry{"a.csv", "a\n1\n"}, entry{"notes.txt", "x"})
	entries, err := List(p)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsCSV)
	assert.False(t, entries[1].IsCSV)
	assert.Equal(t, uint64(4), entries[0].Size)
}
