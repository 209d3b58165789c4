package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLabels_ThresholdIsStrict(t *testing.T) {
	// +0.4% then +0.2%: neither clears the 0.5% threshold.
	table := newTestTable(t, []float64{100.0, 100.4, 100.6}, nil)

	labeled, labels, err := NewLabelCreator(0.005).CreateLabels(table)
	require.NoError(t, err)

	assert.Equal(t, 2, labeled.NumRows())
	assert.Equal(t, []int{LabelDown, LabelDown}, labels)
}

func TestCreateLabels_UpMove(t *testing.T) {
	table := newTestTable(t, []float64{100.0, 101.0, 100.2, 100.0}, nil)

	labeled, labels, err := NewLabelCreator(0.005).CreateLabels(table)
	require.NoError(t, err)

	require.Equal(t, 3, labeled.NumRows())
	assert.Equal(t, []int{LabelUp, LabelDown, LabelDown}, labels)
}

func TestCreateLabels_ThresholdBoundary(t *testing.T) {
	// The rule is applied in float64 exactly as written: 100*(1+0.005)
	// rounds to just below 100.5, so a move to 100.5 clears it.
	table := newTestTable(t, []float64{100.0, 100.5}, nil)

	_, labels, err := NewLabelCreator(0.005).CreateLabels(table)
	require.NoError(t, err)
	assert.Equal(t, []int{LabelUp}, labels)

	// With a multiplier that is exactly representable, the at-threshold
	// move is not strictly greater and stays down.
	table = newTestTable(t, []float64{100.0, 125.0}, nil)

	_, labels, err = NewLabelCreator(0.25).CreateLabels(table)
	require.NoError(t, err)
	assert.Equal(t, []int{LabelDown}, labels)
}

func TestCreateLabels_DropsLastRow(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 104}
	table := newTestTable(t, closes, nil)

	labeled, labels, err := NewLabelCreator(0.005).CreateLabels(table)
	require.NoError(t, err)

	assert.Equal(t, 4, labeled.NumRows())
	assert.Len(t, labels, 4)
	assert.Equal(t, table.Timestamps[3], labeled.Timestamps[3])
}

func TestCreateLabels_TooFewRows(t *testing.T) {
	table := newTestTable(t, []float64{100.0}, nil)

	_, _, err := NewLabelCreator(0.005).CreateLabels(table)
	assert.Error(t, err)
}

func TestLabelName(t *testing.T) {
	assert.Equal(t, "up", LabelName(LabelUp))
	assert.Equal(t, "down", LabelName(LabelDown))
}
