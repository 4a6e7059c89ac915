package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testVCF = filepath.Join("..", "..", "internal", "vcf", "testdata", "sarscov2.vcf")
	testGFF = filepath.Join("..", "..", "internal", "annotation", "testdata", "sarscov2.gff3")
)

// writeConfig writes a run config into a temp dir and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_Plot(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, `highlight_genes: [S]
regions:
  - label: RBD
    start: 22517
    end: 23185
    color: "#ffd70060"
`)
	summary := filepath.Join(dir, "windows.csv")
	figure := filepath.Join(dir, "figure.svg")

	code := run([]string{"plot", "--config", cfg, "--summary", summary, "--figure", figure, testVCF, testGFF})
	require.Equal(t, ExitSuccess, code)
	assert.FileExists(t, summary)
	assert.FileExists(t, figure)
}

func TestRun_Bin(t *testing.T) {
	cfg := writeConfig(t, "window_size: 1000\n")
	summary := filepath.Join(t.TempDir(), "windows.tsv")

	code := run([]string{"bin", "--config", cfg, "--summary", summary, "--vcf", testVCF})
	require.Equal(t, ExitSuccess, code)

	data, err := os.ReadFile(summary)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0-1000\t1\t0\t1000\t500\n")
}

func TestRun_MissingInput(t *testing.T) {
	cfg := writeConfig(t, "")
	dir := t.TempDir()

	code := run([]string{"bin", "--config", cfg, "--summary", filepath.Join(dir, "w.tsv"), filepath.Join(dir, "missing.vcf")})
	assert.Equal(t, ExitError, code)
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"bin", "--no-such-flag"}},
		{"missing vcf", []string{"bin"}},
		{"missing annotation", []string{"plot", "--vcf", "x.vcf"}},
		{"invalid window", []string{"bin", "--window-size", "0", "x.vcf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeConfig(t, "")
			args := append([]string{}, tt.args...)
			args = append(args, "--config", cfg)
			assert.Equal(t, ExitUsage, run(args))
		})
	}
}

func TestRun_BadConfigFile(t *testing.T) {
	cfg := writeConfig(t, "window_size: [unclosed\n")
	assert.Equal(t, ExitError, run([]string{"bin", "--config", cfg, testVCF}))
}
