package indicators

import (
	"math"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// RSI computes the Relative Strength Index, a momentum oscillator on
// [0, 100] derived from the ratio of average gains to average losses.
type RSI struct {
	period int
}

// NewRSI creates a new RSI calculator
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Name returns the indicator name
func (r *RSI) Name() string {
	return "RSI"
}

// MinBars returns the minimum number of bars needed; one extra bar is
// required for the first close-to-close change.
func (r *RSI) MinBars() int {
	return r.period + 1
}

// Compute returns the RSI column. A window whose average loss is zero
// saturates at 100 instead of dividing by zero.
func (r *RSI) Compute(data []types.OHLCV) []Column {
	n := len(data)
	out := nanSeries(n)

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := data[i].Close - data[i-1].Close
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = math.Abs(change)
		}
	}

	for i := r.period; i < n; i++ {
		avgGain := windowMean(gains[i-r.period+1 : i+1])
		avgLoss := windowMean(losses[i-r.period+1 : i+1])

		if avgLoss == 0 {
			out[i] = 100
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100 - (100 / (1 + rs))
	}

	return []Column{{
		Name:    "RSI",
		Values:  out,
		MinRows: r.period + 1,
	}}
}
