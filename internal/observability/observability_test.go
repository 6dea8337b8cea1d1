package observability

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/loc-eligibility/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.Logging{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("loaded", "rows", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"loaded"`)
	assert.Contains(t, buf.String(), `"rows":3`)
}

func TestNewLogger_TextDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.Logging{Level: "", Format: "text"}, &buf)

	logger.Info("hidden")
	logger.Warn("missing geography", "rows", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=\"missing geography\"")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.EligibleRows.Set(7)
	a.OutputWrites.WithLabelValues("excel", "excelize-stream").Inc()

	assert.InDelta(t, 7, testutil.ToFloat64(a.EligibleRows), 1e-9)
	assert.InDelta(t, 0, testutil.ToFloat64(b.EligibleRows), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(a.OutputWrites.WithLabelValues("excel", "excelize-stream")), 1e-9)
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.RowsLoaded.WithLabelValues("wages").Set(12)
	m.SOCMatches.Set(4)

	path := filepath.Join(t.TempDir(), "metrics", "loc.prom")
	require.NoError(t, m.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `loc_eligibility_rows_loaded{table="wages"} 12`)
	assert.Contains(t, string(b), "loc_eligibility_soc_matches 4")
}
