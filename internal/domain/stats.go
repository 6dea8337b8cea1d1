package domain

import (
	"math"
	"slices"
)

// Stats summarizes one level column across every row of an occupation.
type Stats struct {
	Count  int
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
	// PercentileRank is the share of the occupation's rows whose level is at
	// or below the offered wage, in percent. Rows with missing levels count
	// in the denominator.
	PercentileRank float64
}

// Describe computes Stats over cells, ignoring missing values for the
// order statistics. It returns nil when there are no cells at all.
func Describe(cells []Cell, wage float64) *Stats {
	if len(cells) == 0 {
		return nil
	}
	values := make([]float64, 0, len(cells))
	atOrBelow := 0
	for _, c := range cells {
		v, ok := c.Float()
		if !ok {
			continue
		}
		values = append(values, v)
		if v <= wage {
			atOrBelow++
		}
	}
	s := &Stats{
		Count:          len(values),
		PercentileRank: float64(atOrBelow) / float64(len(cells)) * 100,
	}
	if len(values) == 0 {
		nan := math.NaN()
		s.Min, s.P25, s.Median, s.P75, s.Max = nan, nan, nan, nan, nan
		return s
	}
	slices.Sort(values)
	s.Min = values[0]
	s.P25 = quantile(values, 0.25)
	s.Median = quantile(values, 0.5)
	s.P75 = quantile(values, 0.75)
	s.Max = values[len(values)-1]
	return s
}

// quantile interpolates linearly between the closest ranks of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}
