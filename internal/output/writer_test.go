package output

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/loc-eligibility/internal/config"
	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

type failingEngine struct{ name string }

func (e failingEngine) Name() string { return e.name }

func (e failingEngine) WriteSheet(string, *domain.Table) error {
	return errors.New("engine unavailable")
}

func reportTable() *domain.Table {
	return table([]string{"Area", "AreaName", "Level2", "Label"},
		[]domain.Cell{txt("12345"), txt("Example City"), num(40.5), {}},
		[]domain.Cell{txt("99999"), {}, num(41), txt("note, with comma")},
	)
}

func newTestWriter(t *testing.T, format string) (*Writer, string) {
	t.Helper()
	cfg := config.Default()
	cfg.Root = t.TempDir()
	cfg.DataYear = "2024"
	cfg.Output.Format = format
	cfg.Paths.OutputDir = "reports/out"
	return NewWriter(cfg, slog.Default()), filepath.Join(cfg.Root, "reports", "out")
}

func TestWriter_CSV(t *testing.T) {
	w, dir := newTestWriter(t, config.FormatCSV)

	res, err := w.Write(reportTable())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "OFLC_Wages_2024_eligible_locations.csv"), res.Path)
	assert.Equal(t, config.FormatCSV, res.Format)

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "Area,AreaName,Level2,Label\n"+
		"12345,Example City,40.5,\n"+
		"99999,,41,\"note, with comma\"\n", string(b))
}

func TestWriter_Excel(t *testing.T) {
	w, dir := newTestWriter(t, config.FormatExcel)

	res, err := w.Write(reportTable())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "OFLC_Wages_2024_eligible_locations.xlsx"), res.Path)
	assert.Equal(t, "excelize-stream", res.Engine)
	assert.Empty(t, res.Failures)

	f, err := excelize.OpenFile(res.Path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Area", "AreaName", "Level2", "Label"}, rows[0])
	assert.Equal(t, []string{"12345", "Example City", "40.5"}, rows[1])
	assert.Equal(t, []string{"99999", "", "41", "note, with comma"}, rows[2])
}

func TestWriter_ExcelCellEngine(t *testing.T) {
	w, _ := newTestWriter(t, config.FormatExcel)
	w.WithEngines(failingEngine{name: "broken"}, cellEngine{})

	res, err := w.Write(reportTable())
	require.NoError(t, err)
	assert.Equal(t, "excelize", res.Engine)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "broken", res.Failures[0].Engine)
	assert.False(t, res.FellBack())

	f, err := excelize.OpenFile(res.Path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Example City", v)
}

func TestWriter_ExcelFallsBackToCSV(t *testing.T) {
	w, dir := newTestWriter(t, config.FormatExcel)
	w.WithEngines(failingEngine{name: "a"}, failingEngine{name: "b"})

	res, err := w.Write(reportTable())
	require.NoError(t, err)
	assert.True(t, res.FellBack())
	assert.Equal(t, config.FormatCSV, res.Format)
	assert.Equal(t, filepath.Join(dir, "OFLC_Wages_2024_eligible_locations.csv"), res.Path)
	assert.Len(t, res.Failures, 2)
	assert.FileExists(t, res.Path)
	assert.NoFileExists(t, filepath.Join(dir, "OFLC_Wages_2024_eligible_locations.xlsx"))
}

func TestWriter_Arrow(t *testing.T) {
	w, _ := newTestWriter(t, config.FormatArrow)

	res, err := w.Write(reportTable())
	require.NoError(t, err)
	assert.Equal(t, config.FormatArrow, res.Format)
	assert.Equal(t, ".arrow", filepath.Ext(res.Path))

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 1, r.NumRecords())
	rec, err := r.Record(0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, rec.NumRows())

	schema := rec.Schema()
	assert.Equal(t, arrow.STRING, schema.Field(0).Type.ID())
	assert.Equal(t, arrow.FLOAT64, schema.Field(2).Type.ID())

	level := rec.Column(2).(*array.Float64)
	assert.InDelta(t, 40.5, level.Value(0), 1e-9)
	names := rec.Column(1).(*array.String)
	assert.Equal(t, "Example City", names.Value(0))
	assert.True(t, names.IsNull(1))
}

func TestWriter_UnknownFormat(t *testing.T) {
	w, _ := newTestWriter(t, "pdf")
	_, err := w.Write(reportTable())
	require.ErrorIs(t, err, ErrUnknownFormat)
}
