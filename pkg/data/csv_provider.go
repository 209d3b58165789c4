package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// CSVProvider implements Provider for CSV files
type CSVProvider struct {
	format CSVColumnMapping
}

// NewCSVProvider creates a new CSV data provider with default format
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a new CSV data provider with custom format
func NewCSVProviderWithFormat(format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{format: format}
}

// GetName returns the name of the data provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadData loads historical data from a CSV file
func (p *CSVProvider) LoadData(source string) ([]types.OHLCV, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("could not open data file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, err
	}

	format := p.format
	var data []types.OHLCV

	lineNum := 1 // Start from 1 since we already read header
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %v", lineNum, err)
		}
		lineNum++

		if len(record) < format.MinColumns {
			log.Printf("⚠️ Insufficient columns at line %d (expected %d, got %d), skipping", lineNum, format.MinColumns, len(record))
			continue
		}

		timestamp, err := parseTimestamp(record[format.TimestampCol], format.DateFormat)
		if err != nil {
			log.Printf("⚠️ Invalid timestamp '%s' at line %d, skipping: %v", record[format.TimestampCol], lineNum, err)
			continue
		}

		open, err := strconv.ParseFloat(record[format.OpenCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid open price '%s' at line %d, skipping: %v", record[format.OpenCol], lineNum, err)
			continue
		}

		high, err := strconv.ParseFloat(record[format.HighCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid high price '%s' at line %d, skipping: %v", record[format.HighCol], lineNum, err)
			continue
		}

		low, err := strconv.ParseFloat(record[format.LowCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid low price '%s' at line %d, skipping: %v", record[format.LowCol], lineNum, err)
			continue
		}

		close, err := strconv.ParseFloat(record[format.CloseCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid close price '%s' at line %d, skipping: %v", record[format.CloseCol], lineNum, err)
			continue
		}

		volume, err := strconv.ParseFloat(record[format.VolumeCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid volume '%s' at line %d, skipping: %v", record[format.VolumeCol], lineNum, err)
			continue
		}

		data = append(data, types.OHLCV{
			Timestamp: timestamp,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    volume,
		})
	}

	return data, nil
}

// parseTimestamp accepts either the configured date layout or a unix
// millisecond epoch, which some exchange exports use.
func parseTimestamp(value, layout string) (time.Time, error) {
	if ts, err := time.Parse(layout, value); err == nil {
		return ts, nil
	}
	if epoch, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(epoch).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", value)
}
