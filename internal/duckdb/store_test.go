package duckdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-density/internal/density"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.db.Ping())
}

func TestWriteAndReadBins(t *testing.T) {
	s := openInMemory(t)

	res, err := density.Bin([]int64{0, 399, 400, 999}, 1000, 400)
	require.NoError(t, err)
	require.NoError(t, s.WriteBins(res.Bins))

	bins, err := s.ReadBins()
	require.NoError(t, err)
	assert.Equal(t, res.Bins, bins)

	var label string
	require.NoError(t, s.db.QueryRow(`SELECT window_label FROM window_counts WHERE window_index = 2`).Scan(&label))
	assert.Equal(t, "800-1000", label)
}

func TestWriteBinsOverwrites(t *testing.T) {
	s := openInMemory(t)

	first, err := density.Bin([]int64{1, 2, 3}, 1200, 400)
	require.NoError(t, err)
	require.NoError(t, s.WriteBins(first.Bins))

	second, err := density.Bin([]int64{500}, 800, 400)
	require.NoError(t, err)
	require.NoError(t, s.WriteBins(second.Bins))

	bins, err := s.ReadBins()
	require.NoError(t, err)
	assert.Equal(t, second.Bins, bins)
}

func TestWriteBinsEmpty(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteBins(nil))

	bins, err := s.ReadBins()
	require.NoError(t, err)
	assert.Empty(t, bins)
}

func TestRuns(t *testing.T) {
	s := openInMemory(t)

	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	run := RunInfo{
		Input:        FileFingerprint{Path: "calls.vcf.gz", Size: 1234, ModTime: mtime},
		GenomeLength: 29903,
		WindowSize:   400,
		Binned:       120,
		Dropped:      2,
		Median:       1,
		Q95:          4.3,
	}
	require.NoError(t, s.WriteRun(run))

	runs, err := s.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.Input.Path, runs[0].Input.Path)
	assert.True(t, mtime.Equal(runs[0].Input.ModTime))
	assert.Equal(t, run.Binned, runs[0].Binned)
	assert.InDelta(t, 4.3, runs[0].Q95, 1e-9)
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "summary.duckdb")

	s, err := Open(path)
	require.NoError(t, err)
	res, err := density.Bin([]int64{10}, 800, 400)
	require.NoError(t, err)
	require.NoError(t, s.WriteBins(res.Bins))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	bins, err := s.ReadBins()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, []int{bins[0].Count, bins[1].Count})
}

func TestStatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.vcf")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	fp, err := StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, fp.Path)
	assert.Equal(t, int64(3), fp.Size)

	_, err = StatFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
