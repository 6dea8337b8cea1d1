package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/loc-eligibility/internal/config"
	"github.com/couchcryptid/loc-eligibility/internal/dataset"
	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

func TestRun_WritesLoadableDataset(t *testing.T) {
	pterm.DisableColor()
	out := t.TempDir()
	var stdout bytes.Buffer

	require.NoError(t, run([]string{"-out", out, "-year", "2023", "-geo-encoding", "latin-1", "-orphans", "2"}, &stdout))

	dir := filepath.Join(out, "OFLC_Wages_2023")
	wages, err := dataset.LoadWages(filepath.Join(dir, "ALC_Export.csv"))
	require.NoError(t, err)
	assert.Equal(t, len(areas)*len(occupations), wages.Len())
	assert.Equal(t, []string{"Area", "SocCode", "GeoLvl", "Level1", "Level2", "Level3", "Level4", "Average", "Label"}, wages.Columns())

	geo, err := dataset.LoadGeography(filepath.Join(dir, "Geography.csv"), config.DefaultEncodings, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "latin-1", geo.Encoding)
	assert.Equal(t, len(areas)-2, geo.Table.Len())
	assert.Equal(t, "Doña Ana County", geo.Table.Cell(4, domain.ColumnCountyTownName).Str)

	merged, err := domain.MergeGeography(wages, geo.Table)
	require.NoError(t, err)
	assert.Equal(t, 2*len(occupations), merged.MissingGeography)

	assert.Contains(t, stdout.String(), "Stats for picking test wages")
}

func TestGenerate_Deterministic(t *testing.T) {
	a, _ := generate(42, 0)
	b, _ := generate(42, 0)
	c, _ := generate(43, 0)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerate_LevelsAscend(t *testing.T) {
	wages, geo := generate(1, 0)
	assert.Len(t, geo, len(areas))
	for _, w := range wages {
		l1, _ := domain.CleanWage(domain.TextCell(w.Level1)).Float()
		l2, _ := domain.CleanWage(domain.TextCell(w.Level2)).Float()
		l3, _ := domain.CleanWage(domain.TextCell(w.Level3)).Float()
		assert.Less(t, l1, l2)
		assert.Less(t, l2, l3)
	}
}

func TestRun_UnsupportedEncoding(t *testing.T) {
	err := run([]string{"-out", t.TempDir(), "-geo-encoding", "shift-jis"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported encoding")
}

func TestWriteRecords_UTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geo.csv")
	require.NoError(t, writeRecords(path, []geographyRecord{{Area: "1", AreaName: "Mayagüez, PR"}}, "utf-8"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Area,AreaName,StateAb,State,CountyTownName\n1,\"Mayagüez, PR\",,,\n", string(b))
}
