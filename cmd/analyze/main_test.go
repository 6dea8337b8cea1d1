package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, wages string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "data", "OFLC_Wages_2024")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ALC_Export.csv"), []byte(wages), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Geography.csv"),
		[]byte("Area,AreaName,StateAb\n12345,Example City,TX\n"), 0o600))

	cfg := `wage_level: L2
hourly_wage: 45.00
soc_code: "15-1252"
data_year: 2024
output:
  format: csv
metrics:
  textfile: metrics/loc.prom
`
	path := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func TestRun_Success(t *testing.T) {
	pterm.DisableColor()
	path := writeProject(t, "Area,SocCode,Level1,Level2\n12345,15-1252,$35.00,$40.50\n")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", path}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Configuration loaded from "+path)
	assert.Contains(t, stdout.String(), "Wage level: L2 (compares against Level2 column)")
	assert.Contains(t, stdout.String(), "ANALYSIS COMPLETE")
	assert.FileExists(t, filepath.Join(filepath.Dir(path), "output", "OFLC_Wages_2024_eligible_locations.csv"))
	assert.FileExists(t, filepath.Join(filepath.Dir(path), "metrics", "loc.prom"))
}

func TestRun_NoMatchesIsSuccess(t *testing.T) {
	pterm.DisableColor()
	path := writeProject(t, "Area,SocCode,Level1,Level2\n12345,15-1252,$35.00,$50.00\n")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", path}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "No eligible locations found")
}

func TestRun_MissingConfig(t *testing.T) {
	pterm.DisableColor()
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "configuration file not found")
}

func TestRun_Interrupted(t *testing.T) {
	pterm.DisableColor()
	path := writeProject(t, "Area,SocCode,Level1,Level2\n12345,15-1252,$35.00,$40.50\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer

	code := run(ctx, []string{"-config", path}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Analysis interrupted by user")
}

func TestRun_Flags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"-h"}, 0},
		{"unknown flag", []string{"-nope"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.want, run(context.Background(), tt.args, &stdout, &stderr))
			assert.Contains(t, stderr.String(), "-config")
		})
	}
}
