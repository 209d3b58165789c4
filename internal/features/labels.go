package features

import (
	"fmt"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// Label values for the binary next-bar movement target.
const (
	LabelDown = 0
	LabelUp   = 1
)

// LabelName returns the display name of a label value.
func LabelName(label int) string {
	if label == LabelUp {
		return "up"
	}
	return "down"
}

// LabelCreator derives a binary target per row from the close strictly
// following it. The rule is total and per-row: recomputing over the same
// close sequence always yields the same labels.
type LabelCreator struct {
	threshold float64
}

// NewLabelCreator creates a label creator with the given relative
// threshold (0.005 means the next close must exceed this close by 0.5%).
func NewLabelCreator(threshold float64) *LabelCreator {
	return &LabelCreator{threshold: threshold}
}

// CreateLabels returns the table with its last row dropped, plus one
// label per remaining row. The last input row has no lookahead close and
// therefore no defined label.
func (lc *LabelCreator) CreateLabels(table *types.FeatureTable) (*types.FeatureTable, []int, error) {
	n := table.NumRows()
	if n < 2 {
		return nil, nil, fmt.Errorf("labeling needs at least 2 rows, have %d", n)
	}

	closes, err := table.Column("Close")
	if err != nil {
		return nil, nil, err
	}

	labels := make([]int, n-1)
	for i := 0; i < n-1; i++ {
		if closes[i+1] > closes[i]*(1+lc.threshold) {
			labels[i] = LabelUp
		} else {
			labels[i] = LabelDown
		}
	}

	return table.Slice(0, n-1), labels, nil
}
