package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestADX_SteadyUptrend(t *testing.T) {
	data := generateTestData(50)

	columns := NewADX(14).Compute(data)
	require.Len(t, columns, 1)

	col := columns[0]
	assert.Equal(t, "ADX", col.Name)
	// One window of directional sums plus one window of DX averaging.
	assert.Equal(t, 27, col.MinRows)

	for i := 0; i < 26; i++ {
		assert.True(t, math.IsNaN(col.Values[i]), "row %d should be NaN", i)
	}

	// A one-directional trend has zero minus-DM, so DX pins at 100.
	for i := 26; i < 50; i++ {
		assert.InDelta(t, 100.0, col.Values[i], 1e-9)
	}
}

func TestADX_StaysInBounds(t *testing.T) {
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100.0 + 10.0*math.Sin(float64(i)*0.3)
	}
	data := generateBarsFromCloses(closes)

	col := NewADX(14).Compute(data)[0]
	for i := 26; i < 120; i++ {
		if math.IsNaN(col.Values[i]) {
			continue
		}
		assert.GreaterOrEqual(t, col.Values[i], 0.0)
		assert.LessOrEqual(t, col.Values[i], 100.0)
	}
}

func TestADX_MinBars(t *testing.T) {
	assert.Equal(t, 14, NewADX(14).MinBars())
}
