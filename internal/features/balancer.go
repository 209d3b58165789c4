package features

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// BalanceStrategy selects how an imbalanced training segment is
// corrected. Strategies are mutually exclusive per run.
type BalanceStrategy string

const (
	// BalanceOversample generates synthetic minority rows by
	// interpolating between a minority row and one of its nearest
	// minority neighbors in normalized feature space.
	BalanceOversample BalanceStrategy = "oversample"
	// BalanceWeight attaches per-row weights inversely proportional to
	// class frequency, leaving the row count unchanged.
	BalanceWeight BalanceStrategy = "weight"
	// BalanceNone leaves the training segment as is.
	BalanceNone BalanceStrategy = "none"
)

// ImbalanceReport describes the label distribution of a segment.
type ImbalanceReport struct {
	Counts        map[int]int
	MinorityLabel int
	MinorityRatio float64
	Imbalanced    bool
}

// ClassBalancer inspects and corrects class imbalance. It operates on
// the training segment only, strictly after the split: interpolating
// neighbors across the split boundary would leak future rows into
// training.
type ClassBalancer struct {
	threshold float64
	neighbors int
	rng       *rand.Rand
}

// NewClassBalancer creates a balancer. Imbalance is flagged when the
// minority class proportion falls below threshold. The seed pins the
// oversampling draw order so runs are reproducible.
func NewClassBalancer(threshold float64, seed int64) *ClassBalancer {
	return &ClassBalancer{
		threshold: threshold,
		neighbors: 5,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Inspect computes the label distribution and flags imbalance.
func (b *ClassBalancer) Inspect(labels []int) ImbalanceReport {
	counts := make(map[int]int)
	for _, l := range labels {
		counts[l]++
	}

	report := ImbalanceReport{Counts: counts}
	if len(labels) == 0 || len(counts) < 2 {
		report.MinorityRatio = 1.0
		return report
	}

	minority := LabelDown
	if counts[LabelUp] < counts[LabelDown] {
		minority = LabelUp
	}
	report.MinorityLabel = minority
	report.MinorityRatio = float64(counts[minority]) / float64(len(labels))
	report.Imbalanced = report.MinorityRatio < b.threshold
	return report
}

// ClassWeights returns one weight per row, inversely proportional to the
// row's class frequency.
func (b *ClassBalancer) ClassWeights(labels []int) []float64 {
	counts := make(map[int]int)
	for _, l := range labels {
		counts[l]++
	}

	total := float64(len(labels))
	classes := float64(len(counts))
	weights := make([]float64, len(labels))
	for i, l := range labels {
		weights[i] = total / (classes * float64(counts[l]))
	}
	return weights
}

// Oversample appends synthetic minority rows until both classes have
// equal counts. Each synthetic row interpolates between a randomly drawn
// minority row and one of its nearest minority neighbors measured over
// the given feature columns.
func (b *ClassBalancer) Oversample(segment Segment, featureColumns []string) (Segment, error) {
	report := b.Inspect(segment.Labels)
	if len(report.Counts) < 2 {
		return segment, fmt.Errorf("oversampling needs both label classes, have %d", len(report.Counts))
	}

	minority := report.MinorityLabel
	majority := LabelUp
	if minority == LabelUp {
		majority = LabelDown
	}
	need := report.Counts[majority] - report.Counts[minority]
	if need <= 0 {
		return segment, nil
	}

	minorityRows := make([]int, 0, report.Counts[minority])
	for i, l := range segment.Labels {
		if l == minority {
			minorityRows = append(minorityRows, i)
		}
	}

	featureMatrix, err := rowsMatrix(segment.Table, featureColumns, minorityRows)
	if err != nil {
		return segment, err
	}

	allColumns := segment.Table.Columns()

	columnValues := make(map[string][]float64, len(allColumns))
	columnBuffers := make(map[string][]float64, len(allColumns))
	for _, name := range allColumns {
		col, err := segment.Table.Column(name)
		if err != nil {
			return segment, err
		}
		columnValues[name] = col
		columnBuffers[name] = make([]float64, 0, need)
	}
	// Synthetic rows inherit the timestamp of their base row. They live
	// only inside the training segment, so the split ordering invariant
	// is unaffected.
	syntheticTimes := make([]time.Time, 0, need)

	for s := 0; s < need; s++ {
		baseIdx := b.rng.Intn(len(minorityRows))
		neighborIdx := b.nearestNeighbor(featureMatrix, baseIdx)
		u := b.rng.Float64()

		baseRow := minorityRows[baseIdx]
		neighborRow := minorityRows[neighborIdx]
		syntheticTimes = append(syntheticTimes, segment.Table.Timestamps[baseRow])

		for _, name := range allColumns {
			col := columnValues[name]
			value := col[baseRow] + u*(col[neighborRow]-col[baseRow])
			columnBuffers[name] = append(columnBuffers[name], value)
		}
	}

	synthTable := types.NewFeatureTable(syntheticTimes)
	for _, name := range allColumns {
		if err := synthTable.AddColumn(name, columnBuffers[name]); err != nil {
			return segment, err
		}
	}

	merged, err := segment.Table.AppendRows(synthTable)
	if err != nil {
		return segment, err
	}

	labels := make([]int, 0, len(segment.Labels)+need)
	labels = append(labels, segment.Labels...)
	for s := 0; s < need; s++ {
		labels = append(labels, minority)
	}

	return Segment{Table: merged, Labels: labels}, nil
}

// nearestNeighbor returns the index (within the minority matrix) of one
// of the k nearest rows to base, drawn at random.
func (b *ClassBalancer) nearestNeighbor(matrix [][]float64, base int) int {
	type candidate struct {
		idx  int
		dist float64
	}
	candidates := make([]candidate, 0, len(matrix)-1)
	for i := range matrix {
		if i == base {
			continue
		}
		candidates = append(candidates, candidate{idx: i, dist: euclidean(matrix[base], matrix[i])})
	}
	if len(candidates) == 0 {
		return base
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].idx < candidates[j].idx
	})

	k := b.neighbors
	if k > len(candidates) {
		k = len(candidates)
	}
	return candidates[b.rng.Intn(k)].idx
}

func euclidean(a, c []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - c[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func rowsMatrix(table *types.FeatureTable, columns []string, rows []int) ([][]float64, error) {
	matrix := make([][]float64, len(rows))
	cols := make([][]float64, len(columns))
	for j, name := range columns {
		col, err := table.Column(name)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	for i, r := range rows {
		vec := make([]float64, len(columns))
		for j := range columns {
			vec[j] = cols[j][r]
		}
		matrix[i] = vec
	}
	return matrix, nil
}
