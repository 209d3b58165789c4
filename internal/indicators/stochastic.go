package indicators

import (
	"math"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// Stochastic computes the stochastic oscillator: %K locates the close
// within the high-low range of the trailing window, %D smooths %K.
type Stochastic struct {
	period    int
	smoothing int
}

// NewStochastic creates a new Stochastic calculator
func NewStochastic(period, smoothing int) *Stochastic {
	return &Stochastic{
		period:    period,
		smoothing: smoothing,
	}
}

// Name returns the indicator name
func (s *Stochastic) Name() string {
	return "Stochastic"
}

// MinBars returns the minimum number of bars needed
func (s *Stochastic) MinBars() int {
	return s.period
}

// Compute returns the %K and %D columns. A window with zero high-low
// range leaves %K undefined for that row; the NaN flows into the shared
// missing-value policy downstream.
func (s *Stochastic) Compute(data []types.OHLCV) []Column {
	n := len(data)

	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, bar := range data {
		highs[i] = bar.High
		lows[i] = bar.Low
	}

	lowestLow := rollingMin(lows, s.period)
	highestHigh := rollingMax(highs, s.period)

	k := nanSeries(n)
	for i := range k {
		if math.IsNaN(lowestLow[i]) || math.IsNaN(highestHigh[i]) {
			continue
		}
		rng := highestHigh[i] - lowestLow[i]
		if rng == 0 {
			continue
		}
		k[i] = 100 * (data[i].Close - lowestLow[i]) / rng
	}

	d := rollingMean(k, s.smoothing)

	return []Column{
		{Name: "Stoch_K", Values: k, MinRows: s.period},
		{Name: "Stoch_D", Values: d, MinRows: s.period + s.smoothing - 1},
	}
}
