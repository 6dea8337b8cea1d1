// Package output shapes the merged table for the report and writes it as a
// spreadsheet, CSV, or Arrow IPC file.
package output

import (
	"slices"
	"strings"

	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

// PreferredColumns is the report column order used when none is configured.
var PreferredColumns = []string{
	domain.ColumnArea,
	domain.ColumnAreaName,
	domain.ColumnStateAb,
	domain.ColumnState,
	domain.ColumnCountyTownName,
	domain.ColumnSocCode,
	"Level1", "Level2", "Level3", "Level4",
	domain.ColumnAverage,
	domain.ColumnLabel,
}

var sortColumns = []string{domain.ColumnStateAb, domain.ColumnAreaName}

// SelectColumns keeps the configured columns, or PreferredColumns when
// configured is empty, dropping any name the table does not have.
func SelectColumns(t *domain.Table, configured []string) *domain.Table {
	if len(configured) == 0 {
		return t.Select(PreferredColumns)
	}
	return t.Select(configured)
}

// SortRows orders rows by StateAb then AreaName, using whichever of the two
// columns exist. Missing keys sort last; ties keep their input order.
func SortRows(t *domain.Table) *domain.Table {
	var keys []string
	for _, c := range sortColumns {
		if t.Has(c) {
			keys = append(keys, c)
		}
	}
	order := make([]int, t.Len())
	for i := range order {
		order[i] = i
	}
	if len(keys) == 0 {
		return t.Take(order)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		for _, k := range keys {
			if c := compareCells(t.Cell(a, k), t.Cell(b, k)); c != 0 {
				return c
			}
		}
		return 0
	})
	return t.Take(order)
}

func compareCells(a, b domain.Cell) int {
	switch {
	case a.IsMissing() && b.IsMissing():
		return 0
	case a.IsMissing():
		return 1
	case b.IsMissing():
		return -1
	}
	av, aNum := a.Float()
	bv, bNum := b.Float()
	if aNum && bNum {
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
	return strings.Compare(a.String(), b.String())
}
