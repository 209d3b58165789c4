package reporting

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bayutamawib/trading-indicator-analysis/internal/analyzer"
	"github.com/bayutamawib/trading-indicator-analysis/internal/features"
)

// ConsoleReporter prints run summaries to stdout.
type ConsoleReporter struct{}

// NewConsoleReporter creates a console reporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// PrintDatasetSummary prints the feature preparation outcome.
func (r *ConsoleReporter) PrintDatasetSummary(dataset *features.Dataset) {
	meta := dataset.Metadata

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("DATASET SUMMARY")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📊 Features", meta.NumFeatures},
		{"📦 Samples", meta.NumSamples},
		{"🏋️ Train Rows", meta.NumTrain},
		{"🔎 Validation Rows", meta.NumValidation},
		{"🧪 Test Rows", meta.NumTest},
	})

	t.AppendSeparator()

	classes := make([]string, 0, len(meta.ClassCounts))
	for name, count := range meta.ClassCounts {
		classes = append(classes, fmt.Sprintf("%s=%d", name, count))
	}
	t.AppendRows([]table.Row{
		{"⚖️ Class Counts", strings.Join(classes, ", ")},
		{"⚖️ Minority Ratio", fmt.Sprintf("%.1f%%", meta.MinorityRatio*100)},
		{"⚖️ Imbalanced", meta.Imbalanced},
		{"🔧 Balance Strategy", string(meta.Strategy)},
	})

	if len(dataset.State.Degenerate) > 0 {
		t.AppendSeparator()
		t.AppendRow(table.Row{"⚠️ Degenerate Columns", strings.Join(dataset.State.Degenerate, ", ")})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 20, WidthMax: 22, Align: text.AlignLeft},
		{Number: 2, WidthMin: 25, WidthMax: 50, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Println()
}

// PrintImportanceRanking prints the indicator importance ranking.
func (r *ConsoleReporter) PrintImportanceRanking(ranked []analyzer.RankedIndicator) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("INDICATOR IMPORTANCE")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Indicator", "Importance"})

	for i, ind := range ranked {
		t.AppendRow(table.Row{i + 1, ind.Name, fmt.Sprintf("%.4f", ind.Importance)})
	}

	t.Render()
	fmt.Println()
}
