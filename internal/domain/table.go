package domain

import (
	"math"
	"strconv"
)

// Well-known column names shared by the wage and geography tables.
const (
	ColumnArea           = "Area"
	ColumnAreaName       = "AreaName"
	ColumnStateAb        = "StateAb"
	ColumnState          = "State"
	ColumnCountyTownName = "CountyTownName"
	ColumnSocCode        = "SocCode"
	ColumnAverage        = "Average"
	ColumnLabel          = "Label"
)

// DatasetPrefix names both the per-year data directory and the output files.
const DatasetPrefix = "OFLC_Wages"

// YearDirName returns the directory name of a data release, e.g. "OFLC_Wages_2024".
func YearDirName(year string) string {
	return DatasetPrefix + "_" + year
}

// CellKind distinguishes the three states a table cell can be in.
type CellKind uint8

const (
	Missing CellKind = iota
	Text
	Number
)

// Cell is a single nullable value. The zero Cell is missing.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

// TextCell returns a text cell, or a missing cell for the empty string.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: Text, Str: s}
}

// NumberCell returns a numeric cell. NaN is stored as missing.
func NumberCell(v float64) Cell {
	if math.IsNaN(v) {
		return Cell{}
	}
	return Cell{Kind: Number, Num: v}
}

func (c Cell) IsMissing() bool { return c.Kind == Missing }

// Float returns the numeric value and whether the cell holds one.
func (c Cell) Float() (float64, bool) {
	if c.Kind != Number {
		return 0, false
	}
	return c.Num, true
}

// String renders the cell for text output. Numbers use the shortest
// representation that round-trips; missing cells render as "".
func (c Cell) String() string {
	switch c.Kind {
	case Text:
		return c.Str
	case Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// Table is an in-memory dataset with ordered, uniquely named columns.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// NewTable creates an empty table. Duplicate column names get a ".N"
// suffix so every column stays addressable by name.
func NewTable(columns []string) *Table {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, name := range columns {
		unique := name
		for n := 1; ; n++ {
			if _, dup := t.index[unique]; !dup {
				break
			}
			unique = name + "." + strconv.Itoa(n)
		}
		t.index[unique] = len(t.columns)
		t.columns = append(t.columns, unique)
	}
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of a column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) { return len(t.rows), len(t.columns) }

// Row returns the cells of row i. The slice is shared with the table.
func (t *Table) Row(i int) []Cell { return t.rows[i] }

// Cell returns the value at row i in the named column, or a missing cell
// when the column does not exist.
func (t *Table) Cell(i int, column string) Cell {
	j, ok := t.index[column]
	if !ok {
		return Cell{}
	}
	return t.rows[i][j]
}

// Append adds a row, padding short rows with missing cells and dropping
// cells beyond the last column.
func (t *Table) Append(cells []Cell) {
	row := make([]Cell, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Take returns a new table holding the given rows in the given order.
func (t *Table) Take(indices []int) *Table {
	out := NewTable(t.columns)
	out.rows = make([][]Cell, 0, len(indices))
	for _, i := range indices {
		out.rows = append(out.rows, append([]Cell(nil), t.rows[i]...))
	}
	return out
}

// Select returns a new table with only the named columns, in the given
// order. Unknown names are skipped.
func (t *Table) Select(names []string) *Table {
	var keep []int
	var kept []string
	for _, name := range names {
		if j, ok := t.index[name]; ok {
			keep = append(keep, j)
			kept = append(kept, name)
		}
	}
	out := NewTable(kept)
	out.rows = make([][]Cell, 0, len(t.rows))
	for _, row := range t.rows {
		r := make([]Cell, len(keep))
		for k, j := range keep {
			r[k] = row[j]
		}
		out.rows = append(out.rows, r)
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	indices := make([]int, len(t.rows))
	for i := range indices {
		indices[i] = i
	}
	return t.Take(indices)
}
