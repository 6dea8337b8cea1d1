package output

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/loc-eligibility/internal/config"
	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

// ErrUnknownFormat is returned for output formats other than excel, csv, arrow.
var ErrUnknownFormat = errors.New("unknown output format")

// SheetEngine writes a table to a spreadsheet file.
type SheetEngine interface {
	Name() string
	WriteSheet(path string, t *domain.Table) error
}

// DefaultEngines is the spreadsheet engine fallback order.
func DefaultEngines() []SheetEngine {
	return []SheetEngine{streamEngine{}, cellEngine{}}
}

// EngineFailure records a spreadsheet engine that was skipped.
type EngineFailure struct {
	Engine string
	Err    error
}

// Written describes the file a Writer produced.
type Written struct {
	Path   string
	Format string
	Engine string
	// Failures lists spreadsheet engines that failed before the one used.
	Failures []EngineFailure
}

// FellBack reports whether an excel request ended up as CSV.
func (w Written) FellBack() bool {
	return len(w.Failures) > 0 && w.Format == config.FormatCSV
}

// Writer writes report tables into the output directory.
type Writer struct {
	dir       string
	format    string
	year      string
	timestamp bool
	engines   []SheetEngine
	logger    *slog.Logger
}

// NewWriter creates a Writer from the output settings.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	return &Writer{
		dir:       cfg.Resolve(cfg.Paths.OutputDir),
		format:    cfg.Output.Format,
		year:      cfg.DataYear.String(),
		timestamp: cfg.Output.IncludeTimestamp,
		engines:   DefaultEngines(),
		logger:    logger,
	}
}

// WithEngines replaces the spreadsheet engine list.
func (w *Writer) WithEngines(engines ...SheetEngine) *Writer {
	w.engines = engines
	return w
}

// Write creates the output directory if needed and writes t in the
// configured format. Spreadsheet engines are tried in order; when all of
// them fail the table is written as CSV instead.
func (w *Writer) Write(t *domain.Table) (Written, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Written{}, fmt.Errorf("create output directory: %w", err)
	}

	switch w.format {
	case config.FormatExcel:
		return w.writeExcel(t)
	case config.FormatCSV:
		return w.writeWith(t, config.FormatCSV, "csv", "gocsv", writeCSV)
	case config.FormatArrow:
		return w.writeWith(t, config.FormatArrow, "arrow", "arrow-ipc", writeArrow)
	default:
		return Written{}, fmt.Errorf("%w '%s'", ErrUnknownFormat, w.format)
	}
}

func (w *Writer) writeExcel(t *domain.Table) (Written, error) {
	path := filepath.Join(w.dir, FileName(w.year, "xlsx", w.timestamp))

	var failures []EngineFailure
	for _, e := range w.engines {
		err := e.WriteSheet(path, t)
		if err == nil {
			return Written{Path: path, Format: config.FormatExcel, Engine: e.Name(), Failures: failures}, nil
		}
		w.logger.Warn("spreadsheet engine failed", "engine", e.Name(), "error", err)
		failures = append(failures, EngineFailure{Engine: e.Name(), Err: err})
		_ = os.Remove(path)
	}

	res, err := w.writeWith(t, config.FormatCSV, "csv", "gocsv", writeCSV)
	res.Failures = failures
	return res, err
}

func (w *Writer) writeWith(t *domain.Table, format, ext, engine string, fn func(string, *domain.Table) error) (Written, error) {
	path := filepath.Join(w.dir, FileName(w.year, ext, w.timestamp))
	if err := fn(path, t); err != nil {
		return Written{}, fmt.Errorf("write %s output: %w", format, err)
	}
	return Written{Path: path, Format: format, Engine: engine}, nil
}
