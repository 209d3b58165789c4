package indicators

import (
	"time"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// generateTestData creates bars with steadily rising closes.
func generateTestData(count int) []types.OHLCV {
	data := make([]types.OHLCV, count)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		close := 100.0 + float64(i)
		data[i] = types.OHLCV{
			Open:      close - 0.5,
			High:      close + 5.0,
			Low:       close - 5.0,
			Close:     close,
			Volume:    1000.0,
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
		}
	}
	return data
}

// generateFlatData creates bars where every price is 100.0.
func generateFlatData(count int) []types.OHLCV {
	data := make([]types.OHLCV, count)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		data[i] = types.OHLCV{
			Open:      100.0,
			High:      100.0,
			Low:       100.0,
			Close:     100.0,
			Volume:    1000.0,
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
		}
	}
	return data
}

// generateBarsFromCloses creates bars around an explicit close series.
func generateBarsFromCloses(closes []float64) []types.OHLCV {
	data := make([]types.OHLCV, len(closes))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, close := range closes {
		data[i] = types.OHLCV{
			Open:      close,
			High:      close + 1.0,
			Low:       close - 1.0,
			Close:     close,
			Volume:    1000.0,
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
		}
	}
	return data
}

func columnByName(columns []Column, name string) *Column {
	for i := range columns {
		if columns[i].Name == name {
			return &columns[i]
		}
	}
	return nil
}
