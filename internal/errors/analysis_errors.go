package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents different types of errors that can occur
// during an analysis run
type ErrorCategory string

const (
	// Structural errors that abort the pipeline run
	ErrorCategoryData          ErrorCategory = "DATA"
	ErrorCategoryIndicator     ErrorCategory = "INDICATOR"
	ErrorCategorySplit         ErrorCategory = "SPLIT"
	ErrorCategoryLabel         ErrorCategory = "LABEL"
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"
)

// AnalysisError represents a categorized error with context.
// None of the pipeline failures are transient, so there is no retry flag:
// every AnalysisError is fatal to the run that produced it.
type AnalysisError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AnalysisError) Unwrap() error {
	return e.Underlying
}

// WrapError wraps an existing error with analysis error context
func WrapError(err error, category ErrorCategory, component, operation string) *AnalysisError {
	if err == nil {
		return nil
	}
	return &AnalysisError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(component, operation, message string) *AnalysisError {
	return &AnalysisError{
		Category:  ErrorCategoryConfiguration,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

// InsufficientHistoryError is returned when an indicator's required window
// exceeds the available bar count. It names the indicator and the minimum
// length it needs so the caller can widen the input range.
type InsufficientHistoryError struct {
	Indicator string
	Required  int
	Actual    int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history for %s: need %d bars, have %d", e.Indicator, e.Required, e.Actual)
}

// NewInsufficientHistory creates an InsufficientHistoryError
func NewInsufficientHistory(indicator string, required, actual int) *InsufficientHistoryError {
	return &InsufficientHistoryError{Indicator: indicator, Required: required, Actual: actual}
}

// IsInsufficientHistory reports whether err is an InsufficientHistoryError
func IsInsufficientHistory(err error) bool {
	var target *InsufficientHistoryError
	return errors.As(err, &target)
}

// SplitUnderflowError is returned when the requested split ratios would
// produce an empty segment.
type SplitUnderflowError struct {
	Segment    string
	TrainRatio float64
	ValRatio   float64
	TestRatio  float64
	TotalRows  int
}

func (e *SplitUnderflowError) Error() string {
	return fmt.Sprintf("split underflow: %s segment is empty with ratios (%.2f, %.2f, %.2f) over %d rows",
		e.Segment, e.TrainRatio, e.ValRatio, e.TestRatio, e.TotalRows)
}

// NewSplitUnderflow creates a SplitUnderflowError
func NewSplitUnderflow(segment string, train, val, test float64, totalRows int) *SplitUnderflowError {
	return &SplitUnderflowError{
		Segment:    segment,
		TrainRatio: train,
		ValRatio:   val,
		TestRatio:  test,
		TotalRows:  totalRows,
	}
}

// IsSplitUnderflow reports whether err is a SplitUnderflowError
func IsSplitUnderflow(err error) bool {
	var target *SplitUnderflowError
	return errors.As(err, &target)
}

// SingleClassLabelsError is returned when the training segment contains
// only one label value. No classifier can be meaningfully fit on it.
type SingleClassLabelsError struct {
	Label string
	Rows  int
}

func (e *SingleClassLabelsError) Error() string {
	return fmt.Sprintf("training segment contains a single label class %q over %d rows", e.Label, e.Rows)
}

// NewSingleClassLabels creates a SingleClassLabelsError
func NewSingleClassLabels(label string, rows int) *SingleClassLabelsError {
	return &SingleClassLabelsError{Label: label, Rows: rows}
}

// IsSingleClassLabels reports whether err is a SingleClassLabelsError
func IsSingleClassLabels(err error) bool {
	var target *SingleClassLabelsError
	return errors.As(err, &target)
}
