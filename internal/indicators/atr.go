package indicators

import (
	"math"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// ATR computes the Average True Range, a range-based volatility measure.
type ATR struct {
	period int
}

// NewATR creates a new ATR calculator
func NewATR(period int) *ATR {
	return &ATR{period: period}
}

// Name returns the indicator name
func (a *ATR) Name() string {
	return "ATR"
}

// MinBars returns the minimum number of bars needed
func (a *ATR) MinBars() int {
	return a.period
}

// Compute returns the ATR column, the simple rolling mean of true range
// over the period. The first bar has no previous close, so its true range
// degrades to high-low.
func (a *ATR) Compute(data []types.OHLCV) []Column {
	tr := make([]float64, len(data))
	for i, bar := range data {
		if i == 0 {
			tr[i] = bar.High - bar.Low
			continue
		}
		prevClose := data[i-1].Close
		tr[i] = math.Max(bar.High-bar.Low,
			math.Max(math.Abs(bar.High-prevClose), math.Abs(bar.Low-prevClose)))
	}

	return []Column{{
		Name:    "ATR",
		Values:  rollingMean(tr, a.period),
		MinRows: a.period,
	}}
}
