package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

func dailyTimestamps(count int) []time.Time {
	stamps := make([]time.Time, count)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range stamps {
		stamps[i] = base.Add(time.Duration(i) * 24 * time.Hour)
	}
	return stamps
}

// newTestTable builds a table with a Close column and any extra feature
// columns, all of the same length.
func newTestTable(t *testing.T, closes []float64, extra map[string][]float64) *types.FeatureTable {
	t.Helper()
	table := types.NewFeatureTable(dailyTimestamps(len(closes)))
	require.NoError(t, table.AddColumn("Close", closes))
	for name, values := range extra {
		require.NoError(t, table.AddColumn(name, values))
	}
	return table
}
