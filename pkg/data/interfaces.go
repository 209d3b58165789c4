package data

import (
	"time"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// Provider loads historical bars from some source.
type Provider interface {
	// LoadData loads historical data from the specified source
	LoadData(source string) ([]types.OHLCV, error)

	// GetName returns the name of the data provider
	GetName() string
}

// Filter narrows a bar slice without mutating it.
type Filter interface {
	// FilterByDateRange keeps bars inside [start, end]
	FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV
}

// CSVColumnMapping defines the column positions for different CSV formats
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// DefaultCSVFormat matches "timestamp,open,high,low,close,volume" rows
// with RFC-3339-style timestamps.
var DefaultCSVFormat = CSVColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateFormat:   "2006-01-02 15:04:05",
}
