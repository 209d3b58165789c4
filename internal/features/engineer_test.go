package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bayutamawib/trading-indicator-analysis/internal/errors"
	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// alternatingTable builds 100 bars whose closes alternate between clear
// up and down moves, yielding a balanced label distribution.
func alternatingTable(t *testing.T) *types.FeatureTable {
	t.Helper()
	n := 100
	closes := make([]float64, n)
	f1 := make([]float64, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			closes[i] = 100
		} else {
			closes[i] = 102
		}
		f1[i] = float64(i)
	}
	return newTestTable(t, closes, map[string][]float64{"f1": f1})
}

// skewedTable builds bars where only every tenth move is an up move.
func skewedTable(t *testing.T) *types.FeatureTable {
	t.Helper()
	n := 200
	closes := make([]float64, n)
	f1 := make([]float64, n)
	closes[0] = 1000
	for i := 1; i < n; i++ {
		if i%10 == 0 {
			closes[i] = closes[i-1] * 1.02
		} else {
			closes[i] = closes[i-1] * 0.999
		}
		f1[i] = closes[i] * 0.5
	}
	f1[0] = closes[0] * 0.5
	return newTestTable(t, closes, map[string][]float64{"f1": f1})
}

func TestFeatureEngineer_Prepare(t *testing.T) {
	engineer, err := NewFeatureEngineer(DefaultEngineerConfig([]string{"f1"}))
	require.NoError(t, err)

	dataset, err := engineer.Prepare(alternatingTable(t))
	require.NoError(t, err)

	// 100 input rows lose one to labeling: 99 -> 69/14/16.
	assert.Equal(t, 99, dataset.Metadata.NumSamples)
	assert.Equal(t, 69, dataset.Train.NumRows())
	assert.Equal(t, 14, dataset.Validation.NumRows())
	assert.Equal(t, 16, dataset.Test.NumRows())
	assert.True(t, VerifyTemporalOrder(dataset.Train, dataset.Validation, dataset.Test))

	assert.Nil(t, dataset.TrainWeights)
	assert.False(t, dataset.Metadata.Imbalanced)
	assert.Equal(t, 1, dataset.Metadata.NumFeatures)
	assert.Equal(t, []string{"f1"}, dataset.Metadata.FeatureNames)

	require.NotNil(t, dataset.State)
	assert.Contains(t, dataset.State.Means, "f1")
}

func TestFeatureEngineer_NormalizationFitOnTrainOnly(t *testing.T) {
	engineer, err := NewFeatureEngineer(DefaultEngineerConfig([]string{"f1"}))
	require.NoError(t, err)

	dataset, err := engineer.Prepare(alternatingTable(t))
	require.NoError(t, err)

	// f1 is 0..98 after labeling; the training reference is rows 0..68.
	// Mean of 0..68 is 34, far from the full-range mean of 49.
	assert.InDelta(t, 34.0, dataset.State.Means["f1"], 1e-12)

	// Training rows of the scaled column have zero mean under that state.
	trainF1, err := dataset.Train.Table.Column("f1")
	require.NoError(t, err)
	sum := 0.0
	for _, v := range trainF1 {
		sum += v
	}
	assert.InDelta(t, 0.0, sum/float64(len(trainF1)), 1e-9)

	// Test rows are scaled with the same state, so they do not center.
	testF1, err := dataset.Test.Table.Column("f1")
	require.NoError(t, err)
	sum = 0.0
	for _, v := range testF1 {
		sum += v
	}
	assert.Greater(t, math.Abs(sum/float64(len(testF1))), 1.0)
}

func TestFeatureEngineer_WeightStrategy(t *testing.T) {
	cfg := DefaultEngineerConfig([]string{"f1"})
	cfg.Strategy = BalanceWeight

	engineer, err := NewFeatureEngineer(cfg)
	require.NoError(t, err)

	dataset, err := engineer.Prepare(skewedTable(t))
	require.NoError(t, err)

	assert.True(t, dataset.Metadata.Imbalanced)
	require.Len(t, dataset.TrainWeights, dataset.Train.NumRows())

	// Minority rows carry the larger weight.
	var upWeight, downWeight float64
	for i, l := range dataset.Train.Labels {
		if l == LabelUp {
			upWeight = dataset.TrainWeights[i]
		} else {
			downWeight = dataset.TrainWeights[i]
		}
	}
	assert.Greater(t, upWeight, downWeight)
}

func TestFeatureEngineer_OversampleStrategy(t *testing.T) {
	cfg := DefaultEngineerConfig([]string{"f1"})
	cfg.Strategy = BalanceOversample

	engineer, err := NewFeatureEngineer(cfg)
	require.NoError(t, err)

	dataset, err := engineer.Prepare(skewedTable(t))
	require.NoError(t, err)

	counts := make(map[int]int)
	for _, l := range dataset.Train.Labels {
		counts[l]++
	}
	assert.Equal(t, counts[LabelDown], counts[LabelUp])

	// Validation and test are untouched by balancing.
	assert.True(t, VerifyTemporalOrder(Segment{Table: dataset.Validation.Table, Labels: dataset.Validation.Labels},
		Segment{Table: dataset.Test.Table.Slice(0, 1), Labels: dataset.Test.Labels[:1]},
		Segment{Table: dataset.Test.Table.Slice(1, dataset.Test.NumRows()), Labels: dataset.Test.Labels[1:]}))
}

func TestFeatureEngineer_SingleClassTraining(t *testing.T) {
	n := 50
	closes := make([]float64, n)
	f1 := make([]float64, n)
	for i := range closes {
		closes[i] = 100 // flat, every label is down
		f1[i] = float64(i)
	}
	table := newTestTable(t, closes, map[string][]float64{"f1": f1})

	engineer, err := NewFeatureEngineer(DefaultEngineerConfig([]string{"f1"}))
	require.NoError(t, err)

	_, err = engineer.Prepare(table)
	require.Error(t, err)
	assert.True(t, apperrors.IsSingleClassLabels(err))
}

func TestFeatureEngineer_UnknownStrategy(t *testing.T) {
	cfg := DefaultEngineerConfig([]string{"f1"})
	cfg.Strategy = BalanceStrategy("undersample")

	engineer, err := NewFeatureEngineer(cfg)
	require.NoError(t, err)

	_, err = engineer.Prepare(skewedTable(t))
	assert.Error(t, err)
}

func TestFeatureEngineer_RequiresFeatureColumns(t *testing.T) {
	_, err := NewFeatureEngineer(DefaultEngineerConfig(nil))
	assert.Error(t, err)
}
