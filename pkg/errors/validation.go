package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxNameLength bounds node IDs and metric names.
const maxNameLength = 1024

// ValidateNodeID validates a node link name.
//
// Validation rules:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 1024 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node ID cannot be empty")
	}
	if len(id) > maxNameLength {
		return New(ErrCodeInvalidInput, "node ID too long (max %d characters)", maxNameLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node ID %q contains control characters", id)
		}
	}
	return nil
}

// ValidateMetricName validates a metric name used for width, height, depth
// or color. Metric names are dotted identifiers such as "Metric.Lines.LOC".
func ValidateMetricName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "metric name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "metric name too long (max %d characters)", maxNameLength)
	}
	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidInput, "metric name %q has surrounding whitespace", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "metric name %q contains invalid characters", name)
		}
	}
	return nil
}

// ValidateLength validates a non-negative finite length such as padding or
// a block length bound.
func ValidateLength(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidArgument, "%s must be finite, got %v", what, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidArgument, "%s must not be negative, got %v", what, v)
	}
	return nil
}

// ValidatePositive validates a strictly positive finite value.
func ValidatePositive(what string, v float64) error {
	if err := ValidateLength(what, v); err != nil {
		return err
	}
	if v == 0 {
		return New(ErrCodeInvalidArgument, "%s must be positive", what)
	}
	return nil
}
