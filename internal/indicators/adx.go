package indicators

import (
	"math"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// ADX computes the Average Directional Index, a trend-strength measure
// on [0, 100]. Directional movement is decomposed per bar, summed over
// the period into +DI/-DI, combined into DX, and DX is smoothed over the
// period again to yield ADX.
type ADX struct {
	period int
}

// NewADX creates a new ADX calculator
func NewADX(period int) *ADX {
	return &ADX{period: period}
}

// Name returns the indicator name
func (a *ADX) Name() string {
	return "ADX"
}

// MinBars returns the minimum number of bars needed
func (a *ADX) MinBars() int {
	return a.period
}

// Compute returns the ADX column. The double smoothing means the first
// defined value appears only after 2*period-1 bars.
func (a *ADX) Compute(data []types.OHLCV) []Column {
	n := len(data)

	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i, bar := range data {
		if i == 0 {
			tr[i] = bar.High - bar.Low
			continue
		}
		prev := data[i-1]

		tr[i] = math.Max(bar.High-bar.Low,
			math.Max(math.Abs(bar.High-prev.Close), math.Abs(bar.Low-prev.Close)))

		upMove := bar.High - prev.High
		downMove := prev.Low - bar.Low
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	trSum := rollingSum(tr, a.period)
	plusDMSum := rollingSum(plusDM, a.period)
	minusDMSum := rollingSum(minusDM, a.period)

	dx := nanSeries(n)
	for i := range dx {
		if math.IsNaN(trSum[i]) || trSum[i] == 0 {
			continue
		}
		plusDI := 100 * plusDMSum[i] / trSum[i]
		minusDI := 100 * minusDMSum[i] / trSum[i]

		diSum := plusDI + minusDI
		if diSum == 0 {
			continue
		}
		dx[i] = 100 * math.Abs(plusDI-minusDI) / diSum
	}

	return []Column{{
		Name:    "ADX",
		Values:  rollingMean(dx, a.period),
		MinRows: 2*a.period - 1,
	}}
}
