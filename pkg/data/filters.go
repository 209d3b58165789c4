package data

import (
	"time"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// DefaultFilter implements Filter.
type DefaultFilter struct{}

// NewDefaultFilter creates a data filter.
func NewDefaultFilter() *DefaultFilter {
	return &DefaultFilter{}
}

// FilterByDateRange keeps the bars whose timestamp lies in [start, end].
// A zero start or end leaves that side unbounded.
func (f *DefaultFilter) FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV {
	out := make([]types.OHLCV, 0, len(data))
	for _, bar := range data {
		if !start.IsZero() && bar.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && bar.Timestamp.After(end) {
			continue
		}
		out = append(out, bar)
	}
	return out
}
