package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/bayutamawib/trading-indicator-analysis/internal/analyzer"
	"github.com/bayutamawib/trading-indicator-analysis/internal/features"
)

// ExcelReporter writes the full analysis artifact as one workbook:
// dataset summary, normalization state and importance ranking.
type ExcelReporter struct{}

// NewExcelReporter creates an Excel reporter.
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// WriteWorkbook writes the analysis workbook to path.
func (r *ExcelReporter) WriteWorkbook(dataset *features.Dataset, ranked []analyzer.RankedIndicator, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const summarySheet = "Summary"
	const normSheet = "Normalization"
	const importanceSheet = "Importance"

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)
	if _, err := fx.NewSheet(normSheet); err != nil {
		return err
	}
	if _, err := fx.NewSheet(importanceSheet); err != nil {
		return err
	}

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summarySheet, dataset, headerStyle); err != nil {
		return err
	}
	if err := r.writeNormalizationSheet(fx, normSheet, dataset.State, headerStyle); err != nil {
		return err
	}
	if err := r.writeImportanceSheet(fx, importanceSheet, ranked, headerStyle); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, dataset *features.Dataset, headerStyle int) error {
	meta := dataset.Metadata

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Features", meta.NumFeatures},
		{"Samples", meta.NumSamples},
		{"Train Rows", meta.NumTrain},
		{"Validation Rows", meta.NumValidation},
		{"Test Rows", meta.NumTest},
		{"Minority Ratio", meta.MinorityRatio},
		{"Imbalanced", meta.Imbalanced},
		{"Balance Strategy", string(meta.Strategy)},
	}
	for name, count := range meta.ClassCounts {
		rows = append(rows, []interface{}{fmt.Sprintf("Class %q", name), count})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return fx.SetCellStyle(sheet, "A1", "B1", headerStyle)
}

func (r *ExcelReporter) writeNormalizationSheet(fx *excelize.File, sheet string, state *features.NormalizationState, headerStyle int) error {
	header := []interface{}{"Column", "Mean", "Std", "Degenerate"}
	if err := fx.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, name := range state.Columns {
		row := []interface{}{name, state.Means[name], state.Stds[name], state.IsDegenerate(name)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return fx.SetCellStyle(sheet, "A1", "D1", headerStyle)
}

func (r *ExcelReporter) writeImportanceSheet(fx *excelize.File, sheet string, ranked []analyzer.RankedIndicator, headerStyle int) error {
	header := []interface{}{"Rank", "Indicator", "Importance"}
	if err := fx.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, ind := range ranked {
		row := []interface{}{i + 1, ind.Name, ind.Importance}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return fx.SetCellStyle(sheet, "A1", "C1", headerStyle)
}
