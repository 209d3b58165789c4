package indicators

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bayutamawib/trading-indicator-analysis/internal/errors"
)

func TestPipeline_ComputeAllColumns(t *testing.T) {
	data := generateTestData(120)

	pipeline := NewDefaultPipeline(PolicyForwardFill)
	table, err := pipeline.ComputeAll(data)
	require.NoError(t, err)
	require.Equal(t, 120, table.NumRows())

	expected := append([]string{}, OHLCVColumns...)
	expected = append(expected, pipeline.IndicatorColumns()...)
	assert.Equal(t, expected, table.Columns())

	for _, name := range table.Columns() {
		values, err := table.Column(name)
		require.NoError(t, err)
		for i, v := range values {
			assert.False(t, math.IsNaN(v), "column %s row %d is NaN after fill", name, i)
		}
	}
}

func TestPipeline_Deterministic(t *testing.T) {
	data := generateTestData(150)

	first, err := NewPipeline(NewCalculators(DefaultParams()), PolicyForwardFill, 4).ComputeAll(data)
	require.NoError(t, err)
	second, err := NewPipeline(NewCalculators(DefaultParams()), PolicyForwardFill, 4).ComputeAll(data)
	require.NoError(t, err)

	require.Equal(t, first.Columns(), second.Columns())
	for _, name := range first.Columns() {
		a, err := first.Column(name)
		require.NoError(t, err)
		b, err := second.Column(name)
		require.NoError(t, err)
		// Bit-identical, not merely close.
		assert.Equal(t, a, b, "column %s differs between runs", name)
	}
}

func TestPipeline_DropPolicy(t *testing.T) {
	data := generateTestData(100)

	table, err := NewDefaultPipeline(PolicyDrop).ComputeAll(data)
	require.NoError(t, err)

	// SMA_50 has the longest warm-up, so the first 49 rows go away.
	assert.Equal(t, 51, table.NumRows())
	assert.Equal(t, data[49].Timestamp, table.Timestamps[0])

	for _, name := range table.Columns() {
		values, err := table.Column(name)
		require.NoError(t, err)
		for _, v := range values {
			assert.False(t, math.IsNaN(v))
		}
	}
}

func TestPipeline_InsufficientHistory(t *testing.T) {
	data := generateTestData(10)

	pipeline := NewPipeline([]Calculator{NewADX(14)}, PolicyForwardFill, 1)
	_, err := pipeline.ComputeAll(data)
	require.Error(t, err)
	require.True(t, apperrors.IsInsufficientHistory(err))

	var histErr *apperrors.InsufficientHistoryError
	require.True(t, errors.As(err, &histErr))
	assert.Equal(t, "ADX", histErr.Indicator)
	assert.Equal(t, 14, histErr.Required)
	assert.Equal(t, 10, histErr.Actual)
}

func TestPipeline_IncompleteWarmupIsStillAnError(t *testing.T) {
	// 20 bars clear ADX's per-calculator minimum but leave its column
	// all-NaN, which the fill step must refuse to paper over.
	data := generateTestData(20)

	pipeline := NewPipeline([]Calculator{NewADX(14)}, PolicyForwardFill, 1)
	_, err := pipeline.ComputeAll(data)
	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientHistory(err))
}

func TestPipeline_UnknownPolicy(t *testing.T) {
	data := generateTestData(120)

	pipeline := NewPipeline(NewCalculators(DefaultParams()), MissingValuePolicy("interpolate"), 2)
	_, err := pipeline.ComputeAll(data)
	require.Error(t, err)

	var analysisErr *apperrors.AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, apperrors.ErrorCategoryConfiguration, analysisErr.Category)
}

func BenchmarkPipeline_ComputeAll(b *testing.B) {
	data := generateTestData(2000)
	pipeline := NewDefaultPipeline(PolicyForwardFill)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pipeline.ComputeAll(data); err != nil {
			b.Fatal(err)
		}
	}
}
