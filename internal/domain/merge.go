package domain

import (
	"fmt"
	"strings"
)

// collisionSuffix is appended to geography columns whose name is already
// used by the wage table.
const collisionSuffix = "_geography"

// MergeResult is the outcome of MergeGeography.
type MergeResult struct {
	Rows *Table
	// MissingGeography counts merged rows without an AreaName.
	MissingGeography int
}

// MergeGeography left-joins wage rows onto the geography table by Area.
// Every wage row is kept. Unmatched rows get missing geography cells; an
// area listed more than once in geo yields one row per listing.
func MergeGeography(wages, geo *Table) (MergeResult, error) {
	wj, ok := wages.ColumnIndex(ColumnArea)
	if !ok {
		return MergeResult{}, fmt.Errorf("%w: '%s' in wage data", ErrMissingColumn, ColumnArea)
	}
	gj, ok := geo.ColumnIndex(ColumnArea)
	if !ok {
		return MergeResult{}, fmt.Errorf("%w: '%s' in geography data", ErrMissingColumn, ColumnArea)
	}

	columns := wages.Columns()
	var geoCols []int
	for j, name := range geo.columns {
		if j == gj {
			continue
		}
		if wages.Has(name) {
			name += collisionSuffix
		}
		columns = append(columns, name)
		geoCols = append(geoCols, j)
	}

	byArea := make(map[string][]int, geo.Len())
	for i, row := range geo.rows {
		key := joinKey(row[gj])
		if key == "" {
			continue
		}
		byArea[key] = append(byArea[key], i)
	}

	out := NewTable(columns)
	width := len(wages.columns)
	for _, row := range wages.rows {
		matches := byArea[joinKey(row[wj])]
		if len(matches) == 0 {
			out.Append(row)
			continue
		}
		for _, gi := range matches {
			merged := make([]Cell, width, len(columns))
			copy(merged, row)
			for _, j := range geoCols {
				merged = append(merged, geo.rows[gi][j])
			}
			out.Append(merged)
		}
	}

	res := MergeResult{Rows: out}
	for i := range out.rows {
		if out.Cell(i, ColumnAreaName).IsMissing() {
			res.MissingGeography++
		}
	}
	return res, nil
}

func joinKey(c Cell) string {
	return strings.TrimSpace(c.String())
}
