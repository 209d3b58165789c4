package indicators

import (
	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// Column is a named value series aligned 1:1 with the input bars.
// Rows inside the warm-up window hold NaN.
type Column struct {
	Name   string
	Values []float64
	// MinRows is the number of bars needed before this column has its
	// first defined value on a sufficiently long input.
	MinRows int
}

// Calculator computes one indicator family over a bar slice.
// Calculators are pure: identical input always yields identical output,
// and they never mutate the bars. A short input is never an error at this
// level; the incomplete-window rows simply come back as NaN and the
// pipeline reconciles them.
type Calculator interface {
	// Name returns the indicator name used in error reporting.
	Name() string
	// MinBars returns the minimum bar count for the indicator to be
	// computable at all.
	MinBars() int
	// Compute returns the indicator columns for the given bars.
	Compute(data []types.OHLCV) []Column
}

// Params holds the periods for every calculator. It is an immutable value
// threaded through construction; there is no package-level mutable state.
type Params struct {
	ATRPeriod           int
	SMAPeriods          []int
	BollingerPeriod     int
	BollingerStdDev     float64
	RSIPeriod           int
	MACDFastPeriod      int
	MACDSlowPeriod      int
	MACDSignalPeriod    int
	StochasticPeriod    int
	StochasticSmoothing int
	ADXPeriod           int
	CCIPeriod           int
}

// DefaultParams returns the standard indicator periods.
func DefaultParams() Params {
	return Params{
		ATRPeriod:           14,
		SMAPeriods:          []int{20, 50},
		BollingerPeriod:     20,
		BollingerStdDev:     2.0,
		RSIPeriod:           14,
		MACDFastPeriod:      12,
		MACDSlowPeriod:      26,
		MACDSignalPeriod:    9,
		StochasticPeriod:    14,
		StochasticSmoothing: 3,
		ADXPeriod:           14,
		CCIPeriod:           20,
	}
}

// NewCalculators builds the full calculator set for the given parameters.
func NewCalculators(p Params) []Calculator {
	return []Calculator{
		NewATR(p.ATRPeriod),
		NewSMA(p.SMAPeriods),
		NewBollingerBands(p.BollingerPeriod, p.BollingerStdDev),
		NewRSI(p.RSIPeriod),
		NewMACD(p.MACDFastPeriod, p.MACDSlowPeriod, p.MACDSignalPeriod),
		NewStochastic(p.StochasticPeriod, p.StochasticSmoothing),
		NewADX(p.ADXPeriod),
		NewCCI(p.CCIPeriod),
	}
}
