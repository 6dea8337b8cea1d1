package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

const sheetName = "Sheet1"

// streamEngine writes rows through excelize's streaming writer.
type streamEngine struct{}

func (streamEngine) Name() string { return "excelize-stream" }

func (streamEngine) WriteSheet(path string, t *domain.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}
	for r, row := range sheetRows(t) {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush stream writer: %w", err)
	}
	return f.SaveAs(path)
}

// cellEngine writes rows through excelize's regular cell API.
type cellEngine struct{}

func (cellEngine) Name() string { return "excelize" }

func (cellEngine) WriteSheet(path string, t *domain.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range sheetRows(t) {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}
	return f.SaveAs(path)
}

// sheetRows renders the header and data rows as spreadsheet values:
// numbers stay numeric and missing cells are left empty.
func sheetRows(t *domain.Table) [][]any {
	cols := t.Columns()
	rows := make([][]any, 0, t.Len()+1)

	header := make([]any, len(cols))
	for j, c := range cols {
		header[j] = c
	}
	rows = append(rows, header)

	for i := 0; i < t.Len(); i++ {
		src := t.Row(i)
		row := make([]any, len(src))
		for j, c := range src {
			switch c.Kind {
			case domain.Number:
				row[j] = c.Num
			case domain.Text:
				row[j] = c.Str
			default:
				row[j] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows
}
