// Package errors provides custom error types and error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes.
const (
	// Fatal for an evaluation call.
	CodeParse      = "PARSE_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"

	// Recovered per group; the group is skipped.
	CodeUnknownGroundTruthShape = "UNKNOWN_GROUND_TRUTH_SHAPE"
	CodeInvalidPrediction       = "INVALID_PREDICTION"
	CodeNoCommonItems           = "NO_COMMON_ITEMS"
	CodeDuplicateItems          = "DUPLICATE_ITEMS"

	// Recovered for the whole run; the aggregate falls back to 0.
	CodeNoScorableGroups = "NO_SCORABLE_GROUPS"
)

// AppError represents an application error with code and details.
type AppError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Fatal reports whether the error aborts an evaluation call rather than
// skipping a single group.
func (e *AppError) Fatal() bool {
	switch e.Code {
	case CodeParse, CodeValidation, CodeInternal:
		return true
	default:
		return false
	}
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError.
func Wrap(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetail adds a single detail to the error.
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Convenience constructors.

// ParseError creates an error for an input source that cannot be loaded.
func ParseError(source string, err error) *AppError {
	return Wrap(CodeParse, fmt.Sprintf("cannot load %s", source), err).WithDetail("source", source)
}

// ValidationError creates a validation error.
func ValidationError(message string) *AppError {
	return New(CodeValidation, message)
}

// InternalError creates an internal error.
func InternalError(message string, err error) *AppError {
	return Wrap(CodeInternal, message, err)
}

// UnknownShapeError creates an error for a ground-truth value of an unsupported shape.
func UnknownShapeError(group, got string) *AppError {
	return New(CodeUnknownGroundTruthShape, fmt.Sprintf("unknown ground truth format for %s: %s", group, got)).
		WithDetail("group", group)
}

// InvalidPredictionError creates an error for a malformed prediction value.
func InvalidPredictionError(group, got string) *AppError {
	return New(CodeInvalidPrediction, fmt.Sprintf("prediction for %s is not a list of clusters: %s", group, got)).
		WithDetail("group", group)
}

// NoCommonItemsError creates an error for a group without shared items.
func NoCommonItemsError(group string) *AppError {
	return New(CodeNoCommonItems, fmt.Sprintf("no common items for %s", group)).
		WithDetail("group", group)
}

// DuplicateItemsError creates an error for a group whose items occur in more than one cluster.
func DuplicateItemsError(group string, predicted, truth int) *AppError {
	return New(CodeDuplicateItems, fmt.Sprintf("%s has %d duplicated predicted and %d duplicated true items", group, predicted, truth)).
		WithDetail("group", group)
}

// NoScorableGroupsError creates the degenerate-run error.
func NoScorableGroupsError() *AppError {
	return New(CodeNoScorableGroups, "no groups could be evaluated")
}

// Code returns the code of the first AppError in err's chain, or "".
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode checks if err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && Code(err) == code
}

// IsParse checks if error is a parse error.
func IsParse(err error) bool {
	return HasCode(err, CodeParse)
}

// IsValidation checks if error is a validation error.
func IsValidation(err error) bool {
	return HasCode(err, CodeValidation)
}
