package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// IndicatorSettings holds the per-indicator period overrides. Zero
// values fall back to the defaults.
type IndicatorSettings struct {
	ATRPeriod           int     `json:"atr_period"`
	SMAPeriods          []int   `json:"sma_periods"`
	BollingerPeriod     int     `json:"bollinger_period"`
	BollingerStdDev     float64 `json:"bollinger_std_dev"`
	RSIPeriod           int     `json:"rsi_period"`
	MACDFastPeriod      int     `json:"macd_fast_period"`
	MACDSlowPeriod      int     `json:"macd_slow_period"`
	MACDSignalPeriod    int     `json:"macd_signal_period"`
	StochasticPeriod    int     `json:"stochastic_period"`
	StochasticSmoothing int     `json:"stochastic_smoothing"`
	ADXPeriod           int     `json:"adx_period"`
	CCIPeriod           int     `json:"cci_period"`
}

// SplitRatioSettings holds the train/validation/test proportions.
type SplitRatioSettings struct {
	Train      float64 `json:"train"`
	Validation float64 `json:"validation"`
	Test       float64 `json:"test"`
}

// Config is the immutable configuration of one analysis run. It is
// loaded once, validated, and threaded explicitly through every
// component so runs stay reproducible.
type Config struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	DataFile string `json:"data_file"`

	Indicators IndicatorSettings  `json:"indicators"`
	SplitRatio SplitRatioSettings `json:"split_ratios"`

	LabelThreshold     float64 `json:"label_threshold"`
	ImbalanceThreshold float64 `json:"imbalance_threshold"`
	BalanceStrategy    string  `json:"balance_strategy"`
	MissingValuePolicy string  `json:"missing_value_policy"`
	Seed               int64   `json:"seed"`
	Workers            int     `json:"workers"`
	MinRows            int     `json:"min_rows"`

	OutputDir string `json:"output_dir"`
}

// NewDefaultConfig returns the standard configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Interval: "1d",
		Indicators: IndicatorSettings{
			ATRPeriod:           14,
			SMAPeriods:          []int{20, 50},
			BollingerPeriod:     20,
			BollingerStdDev:     2.0,
			RSIPeriod:           14,
			MACDFastPeriod:      12,
			MACDSlowPeriod:      26,
			MACDSignalPeriod:    9,
			StochasticPeriod:    14,
			StochasticSmoothing: 3,
			ADXPeriod:           14,
			CCIPeriod:           20,
		},
		SplitRatio:         SplitRatioSettings{Train: 0.70, Validation: 0.15, Test: 0.15},
		LabelThreshold:     0.005,
		ImbalanceThreshold: 0.40,
		BalanceStrategy:    "none",
		MissingValuePolicy: "forward_fill",
		Seed:               42,
		MinRows:            500,
		OutputDir:          "results",
	}
}

// LoadConfig loads configuration from an optional JSON file over the
// defaults, then applies environment overrides, then validates.
func LoadConfig(configFile string) (*Config, error) {
	cfg := NewDefaultConfig()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides maps recognized environment variables onto the
// config. The .env file, if any, has already been loaded by the caller.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ANALYSIS_SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("ANALYSIS_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("ANALYSIS_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("ANALYSIS_BALANCE_STRATEGY"); v != "" {
		cfg.BalanceStrategy = v
	}
	if v := os.Getenv("ANALYSIS_MISSING_VALUE_POLICY"); v != "" {
		cfg.MissingValuePolicy = v
	}
	if v := os.Getenv("ANALYSIS_LABEL_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.LabelThreshold = f
		}
	}
	if v := os.Getenv("ANALYSIS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if c.LabelThreshold <= 0 {
		return fmt.Errorf("label_threshold must be positive, got %f", c.LabelThreshold)
	}
	if c.ImbalanceThreshold <= 0 || c.ImbalanceThreshold >= 1 {
		return fmt.Errorf("imbalance_threshold must be in (0, 1), got %f", c.ImbalanceThreshold)
	}

	switch c.BalanceStrategy {
	case "oversample", "weight", "none":
	default:
		return fmt.Errorf("balance_strategy must be one of oversample, weight, none; got %q", c.BalanceStrategy)
	}

	switch c.MissingValuePolicy {
	case "forward_fill", "drop":
	default:
		return fmt.Errorf("missing_value_policy must be forward_fill or drop; got %q", c.MissingValuePolicy)
	}

	ind := c.Indicators
	for name, period := range map[string]int{
		"atr_period":           ind.ATRPeriod,
		"bollinger_period":     ind.BollingerPeriod,
		"rsi_period":           ind.RSIPeriod,
		"macd_fast_period":     ind.MACDFastPeriod,
		"macd_slow_period":     ind.MACDSlowPeriod,
		"macd_signal_period":   ind.MACDSignalPeriod,
		"stochastic_period":    ind.StochasticPeriod,
		"stochastic_smoothing": ind.StochasticSmoothing,
		"adx_period":           ind.ADXPeriod,
		"cci_period":           ind.CCIPeriod,
	} {
		if period < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", name, period)
		}
	}
	if len(ind.SMAPeriods) == 0 {
		return fmt.Errorf("sma_periods must list at least one period")
	}
	for _, p := range ind.SMAPeriods {
		if p < 1 {
			return fmt.Errorf("sma_periods entries must be at least 1, got %d", p)
		}
	}
	if ind.MACDFastPeriod >= ind.MACDSlowPeriod {
		return fmt.Errorf("macd_fast_period (%d) must be less than macd_slow_period (%d)",
			ind.MACDFastPeriod, ind.MACDSlowPeriod)
	}

	r := c.SplitRatio
	if r.Train <= 0 || r.Validation <= 0 || r.Test <= 0 {
		return fmt.Errorf("split ratios must all be positive")
	}
	sum := r.Train + r.Validation + r.Test
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("split ratios must sum to 1.0, got %f", sum)
	}

	if c.MinRows < 2 {
		return fmt.Errorf("min_rows must be at least 2, got %d", c.MinRows)
	}
	return nil
}
