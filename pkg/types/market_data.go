package types

import "time"

// OHLCV is a single price bar for a fixed time interval.
// Bars are immutable once loaded; every downstream artifact is derived
// from a bar slice without mutating it.
type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// Closes extracts the close series from a bar slice.
func Closes(data []OHLCV) []float64 {
	closes := make([]float64, len(data))
	for i, bar := range data {
		closes[i] = bar.Close
	}
	return closes
}

// Timestamps extracts the timestamp series from a bar slice.
func Timestamps(data []OHLCV) []time.Time {
	ts := make([]time.Time, len(data))
	for i, bar := range data {
		ts[i] = bar.Timestamp
	}
	return ts
}
