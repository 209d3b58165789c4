package indicators

import (
	"fmt"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// SMA computes simple moving averages of the close over one or more periods.
type SMA struct {
	periods []int
}

// NewSMA creates a new SMA calculator; each period yields its own column.
func NewSMA(periods []int) *SMA {
	return &SMA{periods: periods}
}

// Name returns the indicator name
func (s *SMA) Name() string {
	return "SMA"
}

// MinBars returns the minimum number of bars needed, the longest period.
func (s *SMA) MinBars() int {
	max := 0
	for _, p := range s.periods {
		if p > max {
			max = p
		}
	}
	return max
}

// Compute returns one SMA_<period> column per configured period.
func (s *SMA) Compute(data []types.OHLCV) []Column {
	closes := types.Closes(data)

	columns := make([]Column, 0, len(s.periods))
	for _, period := range s.periods {
		columns = append(columns, Column{
			Name:    fmt.Sprintf("SMA_%d", period),
			Values:  rollingMean(closes, period),
			MinRows: period,
		})
	}
	return columns
}
