package features

import (
	"fmt"
	"math"

	"github.com/bayutamawib/trading-indicator-analysis/internal/monitoring"
	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// NormalizationState holds the per-column affine transform fit on the
// reference rows. It is frozen after Fit and serializable, so any later
// consumer can normalize new data identically or invert predictions back
// to original units.
type NormalizationState struct {
	Columns    []string           `json:"columns"`
	Means      map[string]float64 `json:"means"`
	Stds       map[string]float64 `json:"stds"`
	Degenerate []string           `json:"degenerate_columns,omitempty"`
}

// IsDegenerate reports whether a column had zero variance over the
// reference rows.
func (s *NormalizationState) IsDegenerate(name string) bool {
	for _, col := range s.Degenerate {
		if col == name {
			return true
		}
	}
	return false
}

// Normalizer fits and applies a zero-mean unit-variance transform to the
// configured feature columns. Non-feature columns pass through untouched.
type Normalizer struct {
	featureColumns []string
}

// NewNormalizer creates a normalizer over the given feature columns.
func NewNormalizer(featureColumns []string) *Normalizer {
	cols := make([]string, len(featureColumns))
	copy(cols, featureColumns)
	return &Normalizer{featureColumns: cols}
}

// Fit computes mean and standard deviation of each feature column over
// rows [refStart, refEnd) only. The reference range is the training
// segment; validation and test rows must never reach this method.
// The standard deviation uses the population (n) denominator.
func (n *Normalizer) Fit(table *types.FeatureTable, refStart, refEnd int) (*NormalizationState, error) {
	if refStart < 0 || refEnd > table.NumRows() || refStart >= refEnd {
		return nil, fmt.Errorf("invalid reference range [%d, %d) over %d rows", refStart, refEnd, table.NumRows())
	}

	state := &NormalizationState{
		Columns: append([]string(nil), n.featureColumns...),
		Means:   make(map[string]float64, len(n.featureColumns)),
		Stds:    make(map[string]float64, len(n.featureColumns)),
	}

	count := float64(refEnd - refStart)
	for _, name := range n.featureColumns {
		values, err := table.Column(name)
		if err != nil {
			return nil, err
		}
		ref := values[refStart:refEnd]

		sum := 0.0
		for _, v := range ref {
			sum += v
		}
		mean := sum / count

		sumSq := 0.0
		for _, v := range ref {
			d := v - mean
			sumSq += d * d
		}
		std := math.Sqrt(sumSq / count)

		state.Means[name] = mean
		state.Stds[name] = std
		if std == 0 {
			// Constant feature. Normalization maps it to zero; the flag
			// lets downstream reporting call it out.
			state.Degenerate = append(state.Degenerate, name)
			monitoring.RecordDegenerateColumn()
		}
	}

	return state, nil
}

// Transform applies (x-mean)/std to every feature column and returns a
// new table. Degenerate columns map to zero instead of dividing by zero.
func (n *Normalizer) Transform(table *types.FeatureTable, state *NormalizationState) (*types.FeatureTable, error) {
	out := table
	for _, name := range state.Columns {
		values, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		mean := state.Means[name]
		std := state.Stds[name]

		scaled := make([]float64, len(values))
		if std == 0 {
			// all zeros
		} else {
			for i, v := range values {
				scaled[i] = (v - mean) / std
			}
		}

		out, err = out.WithColumn(name, scaled)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Inverse applies x*std+mean, recovering the original scale for any
// table produced by Transform with the same state. Degenerate columns
// come back as their constant mean.
func (n *Normalizer) Inverse(table *types.FeatureTable, state *NormalizationState) (*types.FeatureTable, error) {
	out := table
	for _, name := range state.Columns {
		values, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		mean := state.Means[name]
		std := state.Stds[name]

		restored := make([]float64, len(values))
		for i, v := range values {
			restored[i] = v*std + mean
		}

		out, err = out.WithColumn(name, restored)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
