package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACD_WarmupAndFlatSeries(t *testing.T) {
	data := generateFlatData(60)

	columns := NewMACD(12, 26, 9).Compute(data)
	require.Len(t, columns, 3)

	line := columnByName(columns, "MACD")
	signal := columnByName(columns, "MACD_Signal")
	histogram := columnByName(columns, "MACD_Histogram")
	require.NotNil(t, line)
	require.NotNil(t, signal)
	require.NotNil(t, histogram)

	assert.Equal(t, 26, line.MinRows)
	assert.Equal(t, 34, signal.MinRows)

	assert.True(t, math.IsNaN(line.Values[24]))
	assert.False(t, math.IsNaN(line.Values[25]))
	assert.True(t, math.IsNaN(signal.Values[32]))
	assert.False(t, math.IsNaN(signal.Values[33]))

	// EMAs of a constant series track the constant exactly.
	for i := 33; i < 60; i++ {
		assert.InDelta(t, 0.0, line.Values[i], 1e-12)
		assert.InDelta(t, 0.0, signal.Values[i], 1e-12)
		assert.InDelta(t, 0.0, histogram.Values[i], 1e-12)
	}
}

func TestMACD_RisingTrendIsPositive(t *testing.T) {
	data := generateTestData(80)

	columns := NewMACD(12, 26, 9).Compute(data)
	line := columnByName(columns, "MACD")

	// In a steady uptrend the fast EMA sits above the slow EMA.
	for i := 40; i < 80; i++ {
		assert.Greater(t, line.Values[i], 0.0, "row %d", i)
	}
}

func TestMACD_HistogramIsLineMinusSignal(t *testing.T) {
	data := generateTestData(80)

	columns := NewMACD(12, 26, 9).Compute(data)
	line := columnByName(columns, "MACD")
	signal := columnByName(columns, "MACD_Signal")
	histogram := columnByName(columns, "MACD_Histogram")

	for i := 33; i < 80; i++ {
		assert.InDelta(t, line.Values[i]-signal.Values[i], histogram.Values[i], 1e-12)
	}
}
