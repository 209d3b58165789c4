package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCCI_SteadyUptrend(t *testing.T) {
	// Typical price rises by exactly 1 per bar, so deviations in a 20-bar
	// window run -9.5..9.5 with mean absolute deviation 5.
	data := generateTestData(40)

	columns := NewCCI(20).Compute(data)
	require.Len(t, columns, 1)

	col := columns[0]
	assert.Equal(t, "CCI", col.Name)
	assert.Equal(t, 20, col.MinRows)

	for i := 0; i < 19; i++ {
		assert.True(t, math.IsNaN(col.Values[i]), "row %d should be NaN", i)
	}
	for i := 19; i < 40; i++ {
		assert.InDelta(t, 9.5/(0.015*5.0), col.Values[i], 1e-9)
	}
}

func TestCCI_FlatSeriesIsUndefined(t *testing.T) {
	data := generateFlatData(30)

	col := NewCCI(20).Compute(data)[0]
	// Zero mean deviation leaves the quotient undefined.
	for i := 19; i < 30; i++ {
		assert.True(t, math.IsNaN(col.Values[i]), "row %d should be NaN", i)
	}
}

func TestCCI_SignFollowsDeviation(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100.0 + 8.0*math.Sin(float64(i)*0.5)
	}
	data := generateBarsFromCloses(closes)

	col := NewCCI(20).Compute(data)[0]
	sawPositive, sawNegative := false, false
	for i := 19; i < 60; i++ {
		if col.Values[i] > 0 {
			sawPositive = true
		}
		if col.Values[i] < 0 {
			sawNegative = true
		}
	}
	assert.True(t, sawPositive)
	assert.True(t, sawNegative)
}
