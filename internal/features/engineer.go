package features

import (
	apperrors "github.com/bayutamawib/trading-indicator-analysis/internal/errors"
	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// EngineerConfig is the immutable configuration of one feature
// preparation run.
type EngineerConfig struct {
	FeatureColumns     []string
	LabelThreshold     float64
	Ratios             SplitRatios
	ImbalanceThreshold float64
	Strategy           BalanceStrategy
	Seed               int64
}

// DefaultEngineerConfig returns the standard feature preparation
// settings for the given feature columns.
func DefaultEngineerConfig(featureColumns []string) EngineerConfig {
	return EngineerConfig{
		FeatureColumns:     featureColumns,
		LabelThreshold:     0.005,
		Ratios:             DefaultSplitRatios(),
		ImbalanceThreshold: 0.40,
		Strategy:           BalanceNone,
		Seed:               42,
	}
}

// Metadata summarizes one feature preparation run for reporting.
type Metadata struct {
	NumFeatures   int             `json:"n_features"`
	FeatureNames  []string        `json:"feature_names"`
	NumSamples    int             `json:"n_samples"`
	NumTrain      int             `json:"n_train"`
	NumValidation int             `json:"n_validation"`
	NumTest       int             `json:"n_test"`
	ClassCounts   map[string]int  `json:"class_distribution"`
	MinorityRatio float64         `json:"minority_ratio"`
	Imbalanced    bool            `json:"is_imbalanced"`
	Strategy      BalanceStrategy `json:"balance_strategy"`
}

// Dataset is the final artifact handed to the model trainer: three
// temporally disjoint segments, optional per-row training weights, and
// the frozen normalization state for later inverse use.
type Dataset struct {
	Train        Segment
	Validation   Segment
	Test         Segment
	TrainWeights []float64
	State        *NormalizationState
	Metadata     Metadata
}

// FeatureEngineer sequences normalization, labeling, splitting and class
// balancing into one leakage-free pipeline over an indicator table.
type FeatureEngineer struct {
	cfg        EngineerConfig
	labeler    *LabelCreator
	normalizer *Normalizer
	splitter   *DataSplitter
	balancer   *ClassBalancer
}

// NewFeatureEngineer creates a feature engineer, validating the split
// ratios up front.
func NewFeatureEngineer(cfg EngineerConfig) (*FeatureEngineer, error) {
	if len(cfg.FeatureColumns) == 0 {
		return nil, apperrors.NewConfigurationError("features", "new_engineer", "no feature columns specified")
	}
	splitter, err := NewDataSplitter(cfg.Ratios)
	if err != nil {
		return nil, err
	}
	return &FeatureEngineer{
		cfg:        cfg,
		labeler:    NewLabelCreator(cfg.LabelThreshold),
		normalizer: NewNormalizer(cfg.FeatureColumns),
		splitter:   splitter,
		balancer:   NewClassBalancer(cfg.ImbalanceThreshold, cfg.Seed),
	}, nil
}

// Prepare turns an indicator table into the train/validation/test
// dataset. The ordering is deliberate: labels first, then the split
// boundary, then a normalizer fit restricted to the training rows, then
// the split itself, and balancing strictly last so nothing computed from
// validation or test rows can reach the training segment.
func (fe *FeatureEngineer) Prepare(table *types.FeatureTable) (*Dataset, error) {
	labeled, labels, err := fe.labeler.CreateLabels(table)
	if err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrorCategoryLabel, "features", "create_labels")
	}

	n := labeled.NumRows()
	trainRows, _, err := fe.splitter.Boundaries(n)
	if err != nil {
		return nil, err
	}

	state, err := fe.normalizer.Fit(labeled, 0, trainRows)
	if err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrorCategoryData, "features", "fit_normalizer")
	}

	normalized, err := fe.normalizer.Transform(labeled, state)
	if err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrorCategoryData, "features", "transform")
	}

	train, val, test, err := fe.splitter.Split(normalized, labels)
	if err != nil {
		return nil, err
	}

	if err := requireBothClasses(train.Labels); err != nil {
		return nil, err
	}

	report := fe.balancer.Inspect(train.Labels)

	var weights []float64
	switch fe.cfg.Strategy {
	case BalanceOversample:
		if report.Imbalanced {
			train, err = fe.balancer.Oversample(train, fe.cfg.FeatureColumns)
			if err != nil {
				return nil, apperrors.WrapError(err, apperrors.ErrorCategoryLabel, "features", "oversample")
			}
		}
	case BalanceWeight:
		if report.Imbalanced {
			weights = fe.balancer.ClassWeights(train.Labels)
		}
	case BalanceNone:
	default:
		return nil, apperrors.NewConfigurationError("features", "prepare",
			"unknown balance strategy: "+string(fe.cfg.Strategy))
	}

	classCounts := make(map[string]int, len(report.Counts))
	for label, count := range report.Counts {
		classCounts[LabelName(label)] = count
	}

	return &Dataset{
		Train:        train,
		Validation:   val,
		Test:         test,
		TrainWeights: weights,
		State:        state,
		Metadata: Metadata{
			NumFeatures:   len(fe.cfg.FeatureColumns),
			FeatureNames:  append([]string(nil), fe.cfg.FeatureColumns...),
			NumSamples:    n,
			NumTrain:      train.NumRows(),
			NumValidation: val.NumRows(),
			NumTest:       test.NumRows(),
			ClassCounts:   classCounts,
			MinorityRatio: report.MinorityRatio,
			Imbalanced:    report.Imbalanced,
			Strategy:      fe.cfg.Strategy,
		},
	}, nil
}

func requireBothClasses(labels []int) error {
	if len(labels) == 0 {
		return apperrors.NewSingleClassLabels("none", 0)
	}
	first := labels[0]
	for _, l := range labels[1:] {
		if l != first {
			return nil
		}
	}
	return apperrors.NewSingleClassLabels(LabelName(first), len(labels))
}
