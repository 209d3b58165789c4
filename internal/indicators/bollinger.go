package indicators

import (
	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// BollingerBands computes a volatility band around a moving average of
// the close: middle band plus/minus a multiple of the rolling standard
// deviation.
type BollingerBands struct {
	period         int
	stdDevMultiple float64
}

// NewBollingerBands creates a new BollingerBands calculator
func NewBollingerBands(period int, stdDev float64) *BollingerBands {
	return &BollingerBands{
		period:         period,
		stdDevMultiple: stdDev,
	}
}

// Name returns the indicator name
func (bb *BollingerBands) Name() string {
	return "BollingerBands"
}

// MinBars returns the minimum number of bars needed
func (bb *BollingerBands) MinBars() int {
	return bb.period
}

// Compute returns the upper, middle and lower band columns. The standard
// deviation is the sample deviation over the window.
func (bb *BollingerBands) Compute(data []types.OHLCV) []Column {
	closes := types.Closes(data)

	middle := rollingMean(closes, bb.period)
	std := rollingStd(closes, bb.period)

	upper := nanSeries(len(data))
	lower := nanSeries(len(data))
	for i := range middle {
		upper[i] = middle[i] + bb.stdDevMultiple*std[i]
		lower[i] = middle[i] - bb.stdDevMultiple*std[i]
	}

	return []Column{
		{Name: "BB_Upper", Values: upper, MinRows: bb.period},
		{Name: "BB_Middle", Values: middle, MinRows: bb.period},
		{Name: "BB_Lower", Values: lower, MinRows: bb.period},
	}
}
