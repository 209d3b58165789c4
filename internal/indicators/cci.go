package indicators

import (
	"math"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// CCI computes the Commodity Channel Index: the deviation of the typical
// price from its rolling mean, scaled by the rolling mean absolute
// deviation.
type CCI struct {
	period int
}

// NewCCI creates a new CCI calculator
func NewCCI(period int) *CCI {
	return &CCI{period: period}
}

// Name returns the indicator name
func (c *CCI) Name() string {
	return "CCI"
}

// MinBars returns the minimum number of bars needed
func (c *CCI) MinBars() int {
	return c.period
}

// Compute returns the CCI column. A window with zero mean absolute
// deviation leaves the value undefined for that row.
func (c *CCI) Compute(data []types.OHLCV) []Column {
	n := len(data)

	typical := make([]float64, n)
	for i, bar := range data {
		typical[i] = (bar.High + bar.Low + bar.Close) / 3
	}

	smaTP := rollingMean(typical, c.period)

	out := nanSeries(n)
	for i := c.period - 1; i < n; i++ {
		if math.IsNaN(smaTP[i]) {
			continue
		}
		window := typical[i-c.period+1 : i+1]
		meanDev := 0.0
		for _, v := range window {
			meanDev += math.Abs(v - smaTP[i])
		}
		meanDev /= float64(c.period)

		if meanDev == 0 {
			continue
		}
		out[i] = (typical[i] - smaTP[i]) / (0.015 * meanDev)
	}

	return []Column{{
		Name:    "CCI",
		Values:  out,
		MinRows: c.period,
	}}
}
