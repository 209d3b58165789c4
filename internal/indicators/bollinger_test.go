package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBollingerBands_KnownWindow(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	data := generateBarsFromCloses(closes)

	columns := NewBollingerBands(20, 2.0).Compute(data)
	require.Len(t, columns, 3)

	upper := columnByName(columns, "BB_Upper")
	middle := columnByName(columns, "BB_Middle")
	lower := columnByName(columns, "BB_Lower")
	require.NotNil(t, upper)
	require.NotNil(t, middle)
	require.NotNil(t, lower)

	// Sample variance of 1..20 is 35, mean is 10.5.
	std := math.Sqrt(35.0)
	assert.InDelta(t, 10.5, middle.Values[19], 1e-12)
	assert.InDelta(t, 10.5+2*std, upper.Values[19], 1e-12)
	assert.InDelta(t, 10.5-2*std, lower.Values[19], 1e-12)
}

func TestBollingerBands_FlatSeriesCollapses(t *testing.T) {
	data := generateFlatData(25)

	columns := NewBollingerBands(20, 2.0).Compute(data)
	upper := columnByName(columns, "BB_Upper")
	middle := columnByName(columns, "BB_Middle")
	lower := columnByName(columns, "BB_Lower")

	for i := 19; i < 25; i++ {
		assert.InDelta(t, 100.0, middle.Values[i], 1e-12)
		assert.InDelta(t, 100.0, upper.Values[i], 1e-12)
		assert.InDelta(t, 100.0, lower.Values[i], 1e-12)
	}
}

func TestBollingerBands_Ordering(t *testing.T) {
	data := generateTestData(60)

	columns := NewBollingerBands(20, 2.0).Compute(data)
	upper := columnByName(columns, "BB_Upper")
	middle := columnByName(columns, "BB_Middle")
	lower := columnByName(columns, "BB_Lower")

	for i := 19; i < 60; i++ {
		assert.GreaterOrEqual(t, upper.Values[i], middle.Values[i])
		assert.GreaterOrEqual(t, middle.Values[i], lower.Values[i])
	}
}
