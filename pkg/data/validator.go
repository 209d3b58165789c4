package data

import (
	"fmt"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// Validator checks a loaded bar slice before it enters the analysis
// pipeline: enough usable rows, strictly increasing timestamps and
// internally consistent OHLC relations.
type Validator struct {
	minRows int
}

// NewValidator creates a validator requiring at least minRows bars.
func NewValidator(minRows int) *Validator {
	return &Validator{minRows: minRows}
}

// Validate returns the first structural problem found, or nil.
func (v *Validator) Validate(data []types.OHLCV) error {
	if len(data) < v.minRows {
		return fmt.Errorf("insufficient data: need at least %d rows, have %d", v.minRows, len(data))
	}

	for i, bar := range data {
		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			return fmt.Errorf("non-positive price at row %d (%s)", i, bar.Timestamp.Format("2006-01-02 15:04:05"))
		}
		if bar.Volume < 0 {
			return fmt.Errorf("negative volume at row %d (%s)", i, bar.Timestamp.Format("2006-01-02 15:04:05"))
		}

		maxOC := bar.Open
		if bar.Close > maxOC {
			maxOC = bar.Close
		}
		minOC := bar.Open
		if bar.Close < minOC {
			minOC = bar.Close
		}
		if bar.High < maxOC || bar.Low > minOC {
			return fmt.Errorf("inconsistent OHLC at row %d: high=%.6f low=%.6f open=%.6f close=%.6f",
				i, bar.High, bar.Low, bar.Open, bar.Close)
		}

		if i > 0 && !data[i-1].Timestamp.Before(bar.Timestamp) {
			return fmt.Errorf("timestamps not strictly increasing at row %d: %s followed by %s",
				i, data[i-1].Timestamp.Format("2006-01-02 15:04:05"), bar.Timestamp.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}
