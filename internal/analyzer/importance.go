package analyzer

import (
	"fmt"
	"math"
	"sort"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// importanceSumTolerance bounds the floating-point slack allowed when
// checking that importance weights sum to one.
const importanceSumTolerance = 1e-6

// RankedIndicator is one indicator with its importance weight.
type RankedIndicator struct {
	Name       string
	Importance float64
}

// ValidateImportances checks the contract on feature-importance weights
// returned by the model trainer: every weight non-negative and the total
// equal to 1 within floating-point tolerance.
func ValidateImportances(importances map[string]float64) error {
	if len(importances) == 0 {
		return fmt.Errorf("no importance weights provided")
	}
	sum := 0.0
	for name, w := range importances {
		if w < 0 {
			return fmt.Errorf("importance for %s is negative: %f", name, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > importanceSumTolerance {
		return fmt.Errorf("importance weights sum to %f, expected 1.0", sum)
	}
	return nil
}

// RankByImportance sorts indicators by descending importance. Ties break
// by name so the ranking is stable across runs.
func RankByImportance(importances map[string]float64) []RankedIndicator {
	ranked := make([]RankedIndicator, 0, len(importances))
	for name, w := range importances {
		ranked = append(ranked, RankedIndicator{Name: name, Importance: w})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Importance != ranked[j].Importance {
			return ranked[i].Importance > ranked[j].Importance
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// LabelCorrelations computes the absolute Pearson correlation between
// each indicator column and the binary labels. Columns with undefined
// correlation (zero variance on either side) report zero.
func LabelCorrelations(table *types.FeatureTable, labels []int, columns []string) (map[string]float64, error) {
	if table.NumRows() != len(labels) {
		return nil, fmt.Errorf("table has %d rows, labels %d", table.NumRows(), len(labels))
	}

	y := make([]float64, len(labels))
	for i, l := range labels {
		y[i] = float64(l)
	}

	out := make(map[string]float64, len(columns))
	for _, name := range columns {
		col, err := table.Column(name)
		if err != nil {
			return nil, err
		}
		corr := pearson(col, y)
		if math.IsNaN(corr) {
			corr = 0
		}
		out[name] = math.Abs(corr)
	}
	return out, nil
}

// TopCombinations returns the top-n indicators paired with each other,
// strongest pairs first.
func TopCombinations(importances map[string]float64, topN int) [][]string {
	ranked := RankByImportance(importances)
	if topN > len(ranked) {
		topN = len(ranked)
	}

	combos := make([][]string, 0)
	for i := 0; i < topN; i++ {
		for j := i + 1; j < topN; j++ {
			combos = append(combos, []string{ranked[i].Name, ranked[j].Name})
		}
	}
	return combos
}

func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return math.NaN()
	}

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
