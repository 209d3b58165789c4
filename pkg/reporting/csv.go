package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bayutamawib/trading-indicator-analysis/internal/features"
	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// CSVReporter writes feature tables and segments as CSV files.
type CSVReporter struct{}

// NewCSVReporter creates a CSV reporter.
func NewCSVReporter() *CSVReporter {
	return &CSVReporter{}
}

// WriteTable writes a feature table, one row per bar, timestamp first.
func (r *CSVReporter) WriteTable(t *types.FeatureTable, path string) error {
	file, err := createWithDir(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := append([]string{"timestamp"}, t.Columns()...)
	if err := w.Write(header); err != nil {
		return err
	}

	for row := 0; row < t.NumRows(); row++ {
		record := make([]string, 0, len(header))
		record = append(record, t.Timestamps[row].Format("2006-01-02 15:04:05"))
		for _, v := range t.Row(row) {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteSegment writes one labeled split segment with a trailing label
// column.
func (r *CSVReporter) WriteSegment(seg features.Segment, path string) error {
	file, err := createWithDir(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := append([]string{"timestamp"}, seg.Table.Columns()...)
	header = append(header, "label")
	if err := w.Write(header); err != nil {
		return err
	}

	for row := 0; row < seg.NumRows(); row++ {
		record := make([]string, 0, len(header))
		record = append(record, seg.Table.Timestamps[row].Format("2006-01-02 15:04:05"))
		for _, v := range seg.Table.Row(row) {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		record = append(record, features.LabelName(seg.Labels[row]))
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

func createWithDir(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return os.Create(path)
}
