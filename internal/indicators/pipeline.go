package indicators

import (
	"math"
	"runtime"
	"sync"
	"time"

	apperrors "github.com/bayutamawib/trading-indicator-analysis/internal/errors"
	"github.com/bayutamawib/trading-indicator-analysis/internal/monitoring"
	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// MissingValuePolicy selects how warm-up NaN rows are reconciled after
// all calculators have run. It is chosen once per run and applied
// uniformly to every column.
type MissingValuePolicy string

const (
	// PolicyForwardFill seeds each column's leading NaNs with its first
	// valid value, then carries the last valid value forward.
	PolicyForwardFill MissingValuePolicy = "forward_fill"
	// PolicyDrop removes every row that still contains a NaN.
	PolicyDrop MissingValuePolicy = "drop"
)

// OHLCVColumns are the raw bar columns carried into every feature table.
var OHLCVColumns = []string{"Open", "High", "Low", "Close", "Volume"}

// Pipeline fans a bar slice out to all calculators, merges their columns
// with the raw OHLCV columns by row index and applies the missing-value
// policy. Calculators have no data dependency on each other, so they run
// on independent workers; the merge order is fixed by the calculator
// list, which keeps the output bit-identical run to run.
type Pipeline struct {
	calculators []Calculator
	policy      MissingValuePolicy
	workers     int
}

// NewPipeline creates a pipeline over the given calculators.
func NewPipeline(calculators []Calculator, policy MissingValuePolicy, workers int) *Pipeline {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{
		calculators: calculators,
		policy:      policy,
		workers:     workers,
	}
}

// NewDefaultPipeline creates a pipeline with the standard calculator set.
func NewDefaultPipeline(policy MissingValuePolicy) *Pipeline {
	return NewPipeline(NewCalculators(DefaultParams()), policy, 0)
}

// IndicatorColumns returns the names of every indicator column the
// pipeline produces, in output order.
func (p *Pipeline) IndicatorColumns() []string {
	names := make([]string, 0)
	for _, calc := range p.calculators {
		for _, col := range calc.Compute(nil) {
			names = append(names, col.Name)
		}
	}
	return names
}

// ComputeAll runs every calculator and returns the merged feature table.
// A calculator whose minimum window exceeds the bar count aborts the run;
// no partial table is ever returned.
func (p *Pipeline) ComputeAll(data []types.OHLCV) (*types.FeatureTable, error) {
	for _, calc := range p.calculators {
		if len(data) < calc.MinBars() {
			monitoring.RecordPipelineRun("error", 0)
			return nil, apperrors.NewInsufficientHistory(calc.Name(), calc.MinBars(), len(data))
		}
	}

	// Fan out. Results land in per-calculator slots so the merge order
	// does not depend on scheduling.
	results := make([][]Column, len(p.calculators))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := p.workers
	if workers > len(p.calculators) {
		workers = len(p.calculators)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				start := time.Now()
				results[idx] = p.calculators[idx].Compute(data)
				monitoring.ObserveIndicatorDuration(p.calculators[idx].Name(), time.Since(start))
			}
		}()
	}
	for idx := range p.calculators {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	table := types.NewFeatureTable(types.Timestamps(data))
	for _, addOHLCV := range []struct {
		name   string
		values []float64
	}{
		{"Open", barField(data, func(b types.OHLCV) float64 { return b.Open })},
		{"High", barField(data, func(b types.OHLCV) float64 { return b.High })},
		{"Low", barField(data, func(b types.OHLCV) float64 { return b.Low })},
		{"Close", barField(data, func(b types.OHLCV) float64 { return b.Close })},
		{"Volume", barField(data, func(b types.OHLCV) float64 { return b.Volume })},
	} {
		if err := table.AddColumn(addOHLCV.name, addOHLCV.values); err != nil {
			return nil, err
		}
	}

	for _, columns := range results {
		for _, col := range columns {
			if err := table.AddColumn(col.Name, col.Values); err != nil {
				return nil, err
			}
		}
	}

	table, err := p.applyMissingValuePolicy(table, results)
	if err != nil {
		monitoring.RecordPipelineRun("error", 0)
		return nil, err
	}

	monitoring.RecordPipelineRun("success", table.NumRows())
	return table, nil
}

func barField(data []types.OHLCV, field func(types.OHLCV) float64) []float64 {
	out := make([]float64, len(data))
	for i, bar := range data {
		out[i] = field(bar)
	}
	return out
}

func (p *Pipeline) applyMissingValuePolicy(table *types.FeatureTable, results [][]Column) (*types.FeatureTable, error) {
	// A column with no defined value at all means the input was too
	// short for its full warm-up, even though the per-calculator minimum
	// passed. That is still insufficient history, not a fillable gap.
	for _, columns := range results {
		for _, col := range columns {
			if firstValid(col.Values) < 0 {
				return nil, apperrors.NewInsufficientHistory(col.Name, col.MinRows, len(col.Values))
			}
		}
	}

	switch p.policy {
	case PolicyForwardFill:
		return forwardFillTable(table)
	case PolicyDrop:
		return dropNaNRows(table)
	default:
		return nil, apperrors.NewConfigurationError("pipeline", "apply_missing_value_policy",
			"unknown missing-value policy: "+string(p.policy))
	}
}

func firstValid(values []float64) int {
	for i, v := range values {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}

func forwardFillTable(table *types.FeatureTable) (*types.FeatureTable, error) {
	out := table
	for _, name := range table.Columns() {
		values, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		first := firstValid(values)
		if first < 0 {
			return nil, apperrors.NewInsufficientHistory(name, len(values)+1, len(values))
		}

		filled := make([]float64, len(values))
		copy(filled, values)
		for i := 0; i < first; i++ {
			filled[i] = values[first]
		}
		last := values[first]
		for i := first + 1; i < len(filled); i++ {
			if math.IsNaN(filled[i]) {
				filled[i] = last
			} else {
				last = filled[i]
			}
		}

		out, err = out.WithColumn(name, filled)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func dropNaNRows(table *types.FeatureTable) (*types.FeatureTable, error) {
	keep := make([]int, 0, table.NumRows())
	names := table.Columns()

	columns := make([][]float64, len(names))
	for i, name := range names {
		col, err := table.Column(name)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	for row := 0; row < table.NumRows(); row++ {
		valid := true
		for _, col := range columns {
			if math.IsNaN(col[row]) {
				valid = false
				break
			}
		}
		if valid {
			keep = append(keep, row)
		}
	}

	monitoring.RecordDroppedRows(table.NumRows() - len(keep))
	return table.SelectRows(keep), nil
}
