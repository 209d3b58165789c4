package indicators

import (
	"math"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// MACD computes the Moving Average Convergence Divergence: the spread
// between a fast and a slow EMA of the close, a signal EMA of that
// spread, and their difference as a histogram.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD calculator
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

// Name returns the indicator name
func (m *MACD) Name() string {
	return "MACD"
}

// MinBars returns the minimum number of bars needed
func (m *MACD) MinBars() int {
	return m.slowPeriod
}

// Compute returns the MACD, signal and histogram columns. Each EMA is
// seeded with the simple mean of its first window and folded forward from
// there, so the whole sequence must be recomputed from the same starting
// bar for identical results.
func (m *MACD) Compute(data []types.OHLCV) []Column {
	closes := types.Closes(data)

	fastEMA := emaSeries(closes, m.fastPeriod)
	slowEMA := emaSeries(closes, m.slowPeriod)

	line := nanSeries(len(data))
	for i := range line {
		if math.IsNaN(fastEMA[i]) || math.IsNaN(slowEMA[i]) {
			continue
		}
		line[i] = fastEMA[i] - slowEMA[i]
	}

	signal := emaSeries(line, m.signalPeriod)

	histogram := nanSeries(len(data))
	for i := range histogram {
		if math.IsNaN(line[i]) || math.IsNaN(signal[i]) {
			continue
		}
		histogram[i] = line[i] - signal[i]
	}

	lineMin := m.slowPeriod
	signalMin := m.slowPeriod + m.signalPeriod - 1

	return []Column{
		{Name: "MACD", Values: line, MinRows: lineMin},
		{Name: "MACD_Signal", Values: signal, MinRows: signalMin},
		{Name: "MACD_Histogram", Values: histogram, MinRows: signalMin},
	}
}
