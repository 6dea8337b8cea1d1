package domain

import (
	"regexp"
	"strconv"
)

// WageColumns lists the wage-table columns that hold hourly amounts.
var WageColumns = []string{"Level1", "Level2", "Level3", "Level4", ColumnAverage}

// nonNumericRe matches every character that cannot be part of a plain decimal.
var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// CleanWageColumns returns a copy of t with every wage column present
// converted to numbers. Currency symbols and separators are stripped;
// values that do not parse become missing.
func CleanWageColumns(t *Table) *Table {
	out := t.Clone()
	for _, name := range WageColumns {
		j, ok := out.ColumnIndex(name)
		if !ok {
			continue
		}
		for _, row := range out.rows {
			row[j] = CleanWage(row[j])
		}
	}
	return out
}

// CleanWage converts a single cell. Numeric cells pass through unchanged.
func CleanWage(c Cell) Cell {
	switch c.Kind {
	case Number, Missing:
		return c
	}
	s := nonNumericRe.ReplaceAllString(c.Str, "")
	if s == "" {
		return Cell{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Cell{}
	}
	return NumberCell(v)
}
