package types

import (
	"fmt"
	"time"
)

// FeatureTable is a column-oriented, timestamp-aligned table of real values.
// Every row corresponds to one bar; every column has exactly NumRows values.
// Tables are produced once and treated as immutable: transforms return a new
// table instead of editing in place.
type FeatureTable struct {
	Timestamps []time.Time
	columns    []string
	values     map[string][]float64
}

// NewFeatureTable creates an empty table over the given timestamps.
func NewFeatureTable(timestamps []time.Time) *FeatureTable {
	ts := make([]time.Time, len(timestamps))
	copy(ts, timestamps)
	return &FeatureTable{
		Timestamps: ts,
		columns:    make([]string, 0),
		values:     make(map[string][]float64),
	}
}

// NumRows returns the number of rows in the table.
func (t *FeatureTable) NumRows() int {
	return len(t.Timestamps)
}

// Columns returns the column names in insertion order.
func (t *FeatureTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether a column exists.
func (t *FeatureTable) HasColumn(name string) bool {
	_, ok := t.values[name]
	return ok
}

// AddColumn appends a named column. The column length must match the table.
func (t *FeatureTable) AddColumn(name string, values []float64) error {
	if len(values) != len(t.Timestamps) {
		return fmt.Errorf("column %s has %d values, table has %d rows", name, len(values), len(t.Timestamps))
	}
	if _, exists := t.values[name]; exists {
		return fmt.Errorf("column %s already exists", name)
	}
	v := make([]float64, len(values))
	copy(v, values)
	t.columns = append(t.columns, name)
	t.values[name] = v
	return nil
}

// Column returns a copy of the values of a named column. Callers may
// mutate the returned slice without affecting the table.
func (t *FeatureTable) Column(name string) ([]float64, error) {
	v, ok := t.values[name]
	if !ok {
		return nil, fmt.Errorf("unknown column: %s", name)
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out, nil
}

// Value returns a single cell.
func (t *FeatureTable) Value(name string, row int) (float64, error) {
	v, ok := t.values[name]
	if !ok {
		return 0, fmt.Errorf("unknown column: %s", name)
	}
	if row < 0 || row >= len(v) {
		return 0, fmt.Errorf("row %d out of range for column %s", row, name)
	}
	return v[row], nil
}

// Row returns one row as a slice ordered by Columns().
func (t *FeatureTable) Row(row int) []float64 {
	out := make([]float64, len(t.columns))
	for i, name := range t.columns {
		out[i] = t.values[name][row]
	}
	return out
}

// Slice returns a new table containing rows [start, end).
func (t *FeatureTable) Slice(start, end int) *FeatureTable {
	sub := NewFeatureTable(t.Timestamps[start:end])
	for _, name := range t.columns {
		_ = sub.AddColumn(name, t.values[name][start:end])
	}
	return sub
}

// SelectRows returns a new table containing the given row indices in order.
func (t *FeatureTable) SelectRows(rows []int) *FeatureTable {
	ts := make([]time.Time, len(rows))
	for i, r := range rows {
		ts[i] = t.Timestamps[r]
	}
	sub := NewFeatureTable(ts)
	for _, name := range t.columns {
		col := make([]float64, len(rows))
		src := t.values[name]
		for i, r := range rows {
			col[i] = src[r]
		}
		_ = sub.AddColumn(name, col)
	}
	return sub
}

// Clone returns a deep copy of the table.
func (t *FeatureTable) Clone() *FeatureTable {
	out := NewFeatureTable(t.Timestamps)
	for _, name := range t.columns {
		_ = out.AddColumn(name, t.values[name])
	}
	return out
}

// WithColumn returns a copy of the table with one column replaced.
func (t *FeatureTable) WithColumn(name string, values []float64) (*FeatureTable, error) {
	if len(values) != len(t.Timestamps) {
		return nil, fmt.Errorf("column %s has %d values, table has %d rows", name, len(values), len(t.Timestamps))
	}
	if _, exists := t.values[name]; !exists {
		return nil, fmt.Errorf("unknown column: %s", name)
	}
	out := NewFeatureTable(t.Timestamps)
	for _, col := range t.columns {
		if col == name {
			_ = out.AddColumn(col, values)
		} else {
			_ = out.AddColumn(col, t.values[col])
		}
	}
	return out, nil
}

// AppendRows returns a new table with extra rows appended. The appended
// table must carry exactly the same columns.
func (t *FeatureTable) AppendRows(other *FeatureTable) (*FeatureTable, error) {
	if len(other.columns) != len(t.columns) {
		return nil, fmt.Errorf("column count mismatch: %d vs %d", len(t.columns), len(other.columns))
	}
	ts := make([]time.Time, 0, len(t.Timestamps)+len(other.Timestamps))
	ts = append(ts, t.Timestamps...)
	ts = append(ts, other.Timestamps...)
	out := NewFeatureTable(ts)
	for _, name := range t.columns {
		otherCol, err := other.Column(name)
		if err != nil {
			return nil, err
		}
		col := make([]float64, 0, len(ts))
		col = append(col, t.values[name]...)
		col = append(col, otherCol...)
		_ = out.AddColumn(name, col)
	}
	return out, nil
}
