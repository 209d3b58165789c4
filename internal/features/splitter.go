package features

import (
	"math"

	apperrors "github.com/bayutamawib/trading-indicator-analysis/internal/errors"
	"github.com/bayutamawib/trading-indicator-analysis/pkg/types"
)

// SplitRatios are the train/validation/test proportions. They must each
// be positive and sum to 1 within a small tolerance.
type SplitRatios struct {
	Train      float64 `json:"train"`
	Validation float64 `json:"validation"`
	Test       float64 `json:"test"`
}

// DefaultSplitRatios returns the standard 70/15/15 split.
func DefaultSplitRatios() SplitRatios {
	return SplitRatios{Train: 0.70, Validation: 0.15, Test: 0.15}
}

// Segment is one contiguous, order-preserving sub-range of a labeled
// feature table.
type Segment struct {
	Table  *types.FeatureTable
	Labels []int
}

// NumRows returns the segment's row count.
func (s Segment) NumRows() int {
	if s.Table == nil {
		return 0
	}
	return s.Table.NumRows()
}

// DataSplitter partitions a time-ordered table into three temporally
// disjoint contiguous segments by row count. No shuffling, no
// randomness: train rows strictly precede validation rows, which
// strictly precede test rows.
type DataSplitter struct {
	ratios SplitRatios
}

// NewDataSplitter creates a splitter, validating the ratios.
func NewDataSplitter(ratios SplitRatios) (*DataSplitter, error) {
	if ratios.Train <= 0 || ratios.Train >= 1 ||
		ratios.Validation <= 0 || ratios.Validation >= 1 ||
		ratios.Test <= 0 || ratios.Test >= 1 {
		return nil, apperrors.NewConfigurationError("splitter", "validate_ratios",
			"all split ratios must be strictly between 0 and 1")
	}
	if math.Abs(ratios.Train+ratios.Validation+ratios.Test-1.0) > 0.001 {
		return nil, apperrors.NewConfigurationError("splitter", "validate_ratios",
			"split ratios must sum to 1.0")
	}
	return &DataSplitter{ratios: ratios}, nil
}

// Boundaries computes the train and validation row counts for n rows.
// Both are floored against the total; the remainder goes to test. An
// empty segment is an error, reported with the requested ratios and the
// row count rather than silently truncated.
func (s *DataSplitter) Boundaries(n int) (trainRows, valRows int, err error) {
	trainRows = int(float64(n) * s.ratios.Train)
	valRows = int(float64(n) * s.ratios.Validation)
	testRows := n - trainRows - valRows

	switch {
	case trainRows < 1:
		err = apperrors.NewSplitUnderflow("train", s.ratios.Train, s.ratios.Validation, s.ratios.Test, n)
	case valRows < 1:
		err = apperrors.NewSplitUnderflow("validation", s.ratios.Train, s.ratios.Validation, s.ratios.Test, n)
	case testRows < 1:
		err = apperrors.NewSplitUnderflow("test", s.ratios.Train, s.ratios.Validation, s.ratios.Test, n)
	}
	return trainRows, valRows, err
}

// Split partitions the labeled table into train, validation and test
// segments preserving temporal order.
func (s *DataSplitter) Split(table *types.FeatureTable, labels []int) (train, val, test Segment, err error) {
	n := table.NumRows()
	trainRows, valRows, err := s.Boundaries(n)
	if err != nil {
		return train, val, test, err
	}

	train = Segment{Table: table.Slice(0, trainRows), Labels: labels[:trainRows]}
	val = Segment{Table: table.Slice(trainRows, trainRows+valRows), Labels: labels[trainRows : trainRows+valRows]}
	test = Segment{Table: table.Slice(trainRows+valRows, n), Labels: labels[trainRows+valRows:]}
	return train, val, test, nil
}

// VerifyTemporalOrder checks the hard split invariant:
// max(train) < min(validation) <= max(validation) < min(test).
func VerifyTemporalOrder(train, val, test Segment) bool {
	if train.NumRows() == 0 || val.NumRows() == 0 || test.NumRows() == 0 {
		return false
	}
	trainMax := train.Table.Timestamps[train.NumRows()-1]
	valMin := val.Table.Timestamps[0]
	valMax := val.Table.Timestamps[val.NumRows()-1]
	testMin := test.Table.Timestamps[0]
	return trainMax.Before(valMin) && valMax.Before(testMin)
}
