package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

func validBars(count int) []types.OHLCV {
	data := make([]types.OHLCV, count)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		close := 100.0 + float64(i)
		data[i] = types.OHLCV{
			Open:      close - 0.5,
			High:      close + 2.0,
			Low:       close - 2.0,
			Close:     close,
			Volume:    1000.0,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return data
}

func TestValidator_AcceptsCleanData(t *testing.T) {
	assert.NoError(t, NewValidator(10).Validate(validBars(10)))
}

func TestValidator_MinRows(t *testing.T) {
	err := NewValidator(10).Validate(validBars(9))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient data")
}

func TestValidator_NonPositivePrice(t *testing.T) {
	bars := validBars(5)
	bars[2].Close = -1

	err := NewValidator(2).Validate(bars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive price")
}

func TestValidator_NegativeVolume(t *testing.T) {
	bars := validBars(5)
	bars[3].Volume = -10

	err := NewValidator(2).Validate(bars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative volume")
}

func TestValidator_InconsistentOHLC(t *testing.T) {
	bars := validBars(5)
	bars[1].High = bars[1].Close - 5 // high below close

	err := NewValidator(2).Validate(bars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inconsistent OHLC")
}

func TestValidator_TimestampsMustIncrease(t *testing.T) {
	bars := validBars(5)
	bars[3].Timestamp = bars[2].Timestamp

	err := NewValidator(2).Validate(bars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strictly increasing")
}

func TestDefaultFilter_FilterByDateRange(t *testing.T) {
	bars := validBars(10)
	filter := NewDefaultFilter()

	start := bars[3].Timestamp
	end := bars[6].Timestamp

	filtered := filter.FilterByDateRange(bars, start, end)
	require.Len(t, filtered, 4)
	assert.Equal(t, bars[3].Timestamp, filtered[0].Timestamp)
	assert.Equal(t, bars[6].Timestamp, filtered[3].Timestamp)

	// Zero bounds leave that side open.
	assert.Len(t, filter.FilterByDateRange(bars, time.Time{}, end), 7)
	assert.Len(t, filter.FilterByDateRange(bars, start, time.Time{}), 7)
	assert.Len(t, filter.FilterByDateRange(bars, time.Time{}, time.Time{}), 10)
}
