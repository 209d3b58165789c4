package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/bayutamawib/trading-indicator-analysis/internal/analyzer"
	"github.com/bayutamawib/trading-indicator-analysis/internal/features"
	"github.com/bayutamawib/trading-indicator-analysis/internal/indicators"
	"github.com/bayutamawib/trading-indicator-analysis/internal/logger"
	"github.com/bayutamawib/trading-indicator-analysis/internal/monitoring"
	"github.com/bayutamawib/trading-indicator-analysis/pkg/config"
	"github.com/bayutamawib/trading-indicator-analysis/pkg/data"
	"github.com/bayutamawib/trading-indicator-analysis/pkg/reporting"
)

func main() {
	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	var (
		configFile     = flag.String("config", "", "Path to JSON configuration file")
		dataFile       = flag.String("data", "", "Path to OHLCV CSV file")
		symbol         = flag.String("symbol", "", "Symbol name for logging and output paths")
		importanceFile = flag.String("importance", "", "Optional JSON file of model feature-importance weights")
		outputDir      = flag.String("output", "", "Output directory (overrides config)")
		metricsAddr    = flag.String("metrics-addr", "", "Optional address to serve Prometheus metrics on (e.g. :9090)")
	)
	flag.Parse()

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", monitoring.NewMetricsHandler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("⚠️ Metrics server stopped: %v", err)
			}
		}()
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *symbol != "" {
		cfg.Symbol = *symbol
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if cfg.DataFile == "" {
		log.Fatal("❌ No data file specified (use -data or the config file)")
	}
	if cfg.Symbol == "" {
		cfg.Symbol = "UNKNOWN"
	}

	if err := run(cfg, *importanceFile); err != nil {
		log.Fatalf("❌ Analysis failed: %v", err)
	}
}

func run(cfg *config.Config, importanceFile string) error {
	sessionLog, err := logger.NewLogger(cfg.Symbol, cfg.Interval)
	if err != nil {
		return err
	}
	defer sessionLog.Close()

	// Step 1: load data
	sessionLog.Step(1, "Loading data from %s", cfg.DataFile)
	provider := data.NewCSVProvider()
	bars, err := provider.LoadData(cfg.DataFile)
	if err != nil {
		sessionLog.Error("data load failed: %v", err)
		return err
	}
	sessionLog.Info("Loaded %d bars", len(bars))

	// Step 2: validate data
	sessionLog.Step(2, "Validating %d bars", len(bars))
	if err := data.NewValidator(cfg.MinRows).Validate(bars); err != nil {
		sessionLog.Error("data validation failed: %v", err)
		return err
	}

	// Step 3: compute indicators
	sessionLog.Step(3, "Computing indicators")
	pipeline := indicators.NewPipeline(
		indicators.NewCalculators(indicatorParams(cfg)),
		indicators.MissingValuePolicy(cfg.MissingValuePolicy),
		cfg.Workers,
	)
	table, err := pipeline.ComputeAll(bars)
	if err != nil {
		sessionLog.Error("indicator pipeline failed: %v", err)
		return err
	}
	featureColumns := pipeline.IndicatorColumns()
	sessionLog.Info("Computed %d indicator columns over %d rows", len(featureColumns), table.NumRows())

	// Step 4: prepare features
	sessionLog.Step(4, "Preparing features")
	engineer, err := features.NewFeatureEngineer(features.EngineerConfig{
		FeatureColumns:     featureColumns,
		LabelThreshold:     cfg.LabelThreshold,
		Ratios:             features.SplitRatios{Train: cfg.SplitRatio.Train, Validation: cfg.SplitRatio.Validation, Test: cfg.SplitRatio.Test},
		ImbalanceThreshold: cfg.ImbalanceThreshold,
		Strategy:           features.BalanceStrategy(cfg.BalanceStrategy),
		Seed:               cfg.Seed,
	})
	if err != nil {
		return err
	}
	dataset, err := engineer.Prepare(table)
	if err != nil {
		sessionLog.Error("feature preparation failed: %v", err)
		return err
	}
	sessionLog.Info("Dataset ready: train=%d validation=%d test=%d",
		dataset.Metadata.NumTrain, dataset.Metadata.NumValidation, dataset.Metadata.NumTest)

	// Step 5: optional importance ranking from an external model run
	var ranked []analyzer.RankedIndicator
	if importanceFile != "" {
		sessionLog.Step(5, "Ranking importance weights from %s", importanceFile)
		ranked, err = loadImportances(importanceFile)
		if err != nil {
			sessionLog.Error("importance ranking failed: %v", err)
			return err
		}
	}

	// Step 6: write outputs
	sessionLog.Step(6, "Writing outputs to %s", cfg.OutputDir)
	if err := writeOutputs(cfg, dataset, ranked); err != nil {
		sessionLog.Error("output writing failed: %v", err)
		return err
	}

	console := reporting.NewConsoleReporter()
	console.PrintDatasetSummary(dataset)
	if len(ranked) > 0 {
		console.PrintImportanceRanking(ranked)
	}

	sessionLog.Info("Analysis complete")
	return nil
}

func indicatorParams(cfg *config.Config) indicators.Params {
	ind := cfg.Indicators
	return indicators.Params{
		ATRPeriod:           ind.ATRPeriod,
		SMAPeriods:          ind.SMAPeriods,
		BollingerPeriod:     ind.BollingerPeriod,
		BollingerStdDev:     ind.BollingerStdDev,
		RSIPeriod:           ind.RSIPeriod,
		MACDFastPeriod:      ind.MACDFastPeriod,
		MACDSlowPeriod:      ind.MACDSlowPeriod,
		MACDSignalPeriod:    ind.MACDSignalPeriod,
		StochasticPeriod:    ind.StochasticPeriod,
		StochasticSmoothing: ind.StochasticSmoothing,
		ADXPeriod:           ind.ADXPeriod,
		CCIPeriod:           ind.CCIPeriod,
	}
}

func loadImportances(path string) ([]analyzer.RankedIndicator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read importance file: %w", err)
	}
	var importances map[string]float64
	if err := json.Unmarshal(raw, &importances); err != nil {
		return nil, fmt.Errorf("could not parse importance file: %w", err)
	}
	if err := analyzer.ValidateImportances(importances); err != nil {
		return nil, err
	}
	return analyzer.RankByImportance(importances), nil
}

func writeOutputs(cfg *config.Config, dataset *features.Dataset, ranked []analyzer.RankedIndicator) error {
	csvReporter := reporting.NewCSVReporter()
	for name, seg := range map[string]features.Segment{
		"train":      dataset.Train,
		"validation": dataset.Validation,
		"test":       dataset.Test,
	} {
		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%s.csv", cfg.Symbol, name))
		if err := csvReporter.WriteSegment(seg, path); err != nil {
			return err
		}
	}

	statePath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_normalization.json", cfg.Symbol))
	stateJSON, err := json.MarshalIndent(dataset.State, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(statePath, stateJSON, 0644); err != nil {
		return err
	}

	excelReporter := reporting.NewExcelReporter()
	workbookPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_analysis.xlsx", cfg.Symbol))
	return excelReporter.WriteWorkbook(dataset, ranked, workbookPath)
}
