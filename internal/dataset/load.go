package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

// GeographyLoad is the result of LoadGeography.
type GeographyLoad struct {
	Table *domain.Table
	// Encoding is the configured name that decoded the file.
	Encoding string
	// Rejected lists the encodings tried and skipped before Encoding.
	Rejected []string
}

// LoadWages reads the wage table as UTF-8.
func LoadWages(path string) (*domain.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ALC file: %w", err)
	}
	text, err := decode(data, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("read ALC file %s: %w", path, err)
	}
	t, err := parseCSV(bytes.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse ALC file %s: %w", path, err)
	}
	return t, nil
}

// LoadGeography reads the geography table, trying each encoding in order
// and keeping the first one that decodes. Unknown encoding names are
// skipped. A CSV syntax error is fatal regardless of encoding.
func LoadGeography(path string, encodings []string, logger *slog.Logger) (GeographyLoad, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GeographyLoad{}, fmt.Errorf("read geography file: %w", err)
	}

	var res GeographyLoad
	var lastErr error
	for _, name := range encodings {
		text, err := decode(data, name)
		if err != nil {
			logger.Debug("geography encoding rejected", "encoding", name, "error", err)
			res.Rejected = append(res.Rejected, name)
			lastErr = err
			continue
		}
		t, err := parseCSV(bytes.NewReader(text))
		if err != nil {
			return GeographyLoad{}, fmt.Errorf("parse geography file %s: %w", path, err)
		}
		res.Table = t
		res.Encoding = name
		return res, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no encodings configured")
	}
	return GeographyLoad{}, fmt.Errorf("%w: %s: %w", ErrEncoding, path, lastErr)
}

// parseCSV reads a header row and data rows into a table. Empty fields
// become missing cells and short rows are padded; a row with more fields
// than the header is an error.
func parseCSV(r io.Reader) (*domain.Table, error) {
	reader := gocsv.LazyCSVReader(r)
	cr, _ := reader.(*csv.Reader)
	if cr != nil {
		cr.FieldsPerRecord = -1
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return domain.NewTable(nil), nil
	}
	if err != nil {
		return nil, err
	}
	t := domain.NewTable(header)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d",
				ErrMalformedRow, recordLine(cr, t.Len()+2), len(header), len(record))
		}
		cells := make([]domain.Cell, len(record))
		for i, field := range record {
			cells[i] = domain.TextCell(field)
		}
		t.Append(cells)
	}
}

// recordLine returns the input line the last record started on, falling
// back to the data row count when the reader cannot tell.
func recordLine(cr *csv.Reader, fallback int) int {
	if cr == nil {
		return fallback
	}
	line, _ := cr.FieldPos(0)
	return line
}
