package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	cells := []Cell{NumberCell(40), NumberCell(10), {}, NumberCell(30), NumberCell(20)}

	s := Describe(cells, 25)
	require.NotNil(t, s)

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 10, s.Min, 1e-9)
	assert.InDelta(t, 17.5, s.P25, 1e-9)
	assert.InDelta(t, 25, s.Median, 1e-9)
	assert.InDelta(t, 32.5, s.P75, 1e-9)
	assert.InDelta(t, 40, s.Max, 1e-9)
	// 10 and 20 of five rows, the missing one included.
	assert.InDelta(t, 40, s.PercentileRank, 1e-9)
}

func TestDescribe_SingleValue(t *testing.T) {
	s := Describe([]Cell{NumberCell(40.5)}, 45)
	require.NotNil(t, s)
	assert.InDelta(t, 40.5, s.Min, 1e-9)
	assert.InDelta(t, 40.5, s.Median, 1e-9)
	assert.InDelta(t, 100, s.PercentileRank, 1e-9)
}

func TestDescribe_Empty(t *testing.T) {
	assert.Nil(t, Describe(nil, 10))

	s := Describe([]Cell{{}, {}}, 10)
	require.NotNil(t, s)
	assert.Zero(t, s.Count)
	assert.True(t, math.IsNaN(s.Median))
	assert.Zero(t, s.PercentileRank)
}
