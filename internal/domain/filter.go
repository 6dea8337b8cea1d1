package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMissingColumn is returned when a required column is absent from a table.
var ErrMissingColumn = errors.New("column not found")

// sampleCodeLimit caps the known SOC codes listed when nothing matches.
const sampleCodeLimit = 10

// Criteria selects wage rows for one occupation and offered wage.
type Criteria struct {
	SOCCode    string
	Level      WageLevel
	HourlyWage float64
	Operator   Operator
}

// FilterResult is the outcome of FilterWages.
type FilterResult struct {
	Rows        *Table
	LevelColumn string
	// SOCMatches counts rows for the occupation before the wage test.
	SOCMatches int
	// SampleCodes holds up to ten known SOC codes when SOCMatches is zero.
	SampleCodes []string
	// Stats is nil when no row passed the wage test.
	Stats *Stats
}

// FilterWages keeps the rows of a cleaned wage table that belong to the
// configured SOC code and whose level column passes the operator test.
// Zero SOC matches is not an error: the result is empty and carries a
// sample of known codes instead.
func FilterWages(t *Table, c Criteria) (FilterResult, error) {
	levelColumn := c.Level.Column()
	if levelColumn == "" {
		return FilterResult{}, fmt.Errorf("%w '%s'", ErrInvalidLevel, c.Level)
	}
	lj, ok := t.ColumnIndex(levelColumn)
	if !ok {
		return FilterResult{}, fmt.Errorf("%w: '%s'", ErrMissingColumn, levelColumn)
	}
	sj, ok := t.ColumnIndex(ColumnSocCode)
	if !ok {
		return FilterResult{}, fmt.Errorf("%w: '%s' in wage data", ErrMissingColumn, ColumnSocCode)
	}
	op, err := ParseOperator(string(c.Operator))
	if err != nil {
		return FilterResult{}, err
	}

	res := FilterResult{LevelColumn: levelColumn}
	code := strings.TrimSpace(c.SOCCode)

	var socRows, keep []int
	for i, row := range t.rows {
		// A blank code never matches, even an unset SOC code.
		if key := strings.TrimSpace(row[sj].String()); key == "" || key != code {
			continue
		}
		socRows = append(socRows, i)
		if v, ok := row[lj].Float(); ok && op.Qualifies(v, c.HourlyWage) {
			keep = append(keep, i)
		}
	}
	res.SOCMatches = len(socRows)
	res.Rows = t.Take(keep)

	if len(socRows) == 0 {
		res.SampleCodes = sampleCodes(t, sj)
		return res, nil
	}
	if len(keep) > 0 {
		levels := make([]Cell, len(socRows))
		for k, i := range socRows {
			levels[k] = t.rows[i][lj]
		}
		res.Stats = Describe(levels, c.HourlyWage)
	}
	return res, nil
}

func sampleCodes(t *Table, j int) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, row := range t.rows {
		if row[j].IsMissing() {
			continue
		}
		s := row[j].String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		codes = append(codes, s)
	}
	slices.Sort(codes)
	if len(codes) > sampleCodeLimit {
		codes = codes[:sampleCodeLimit]
	}
	return codes
}
