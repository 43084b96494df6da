package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting identity may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvariantViolation indicates stored rows that contradict the data model,
// e.g. a task for a client/expert pair that has no assignment.
var ErrInvariantViolation = errors.New("invariant violation")

// ErrMixedCurrency indicates an attempt to sum amounts in different currencies.
var ErrMixedCurrency = errors.New("mixed currencies")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// ValidationError is a write-path rejection with per-field messages.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates a ValidationError with a single field message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InvariantViolation describes one detected inconsistency between stored rows.
type InvariantViolation struct {
	Kind     string
	ClientID string
	ExpertID string
	Detail   string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation (%s): client %s, expert %s: %s", e.Kind, e.ClientID, e.ExpertID, e.Detail)
}

func (e *InvariantViolation) Unwrap() error { return ErrInvariantViolation }

// PartialAggregationFailure records that one aggregate of a view could not be
// fetched and was replaced by its empty default.
type PartialAggregationFailure struct {
	Aggregate string
	Err       error
}

func (e *PartialAggregationFailure) Error() string {
	return fmt.Sprintf("aggregate %q degraded: %v", e.Aggregate, e.Err)
}

func (e *PartialAggregationFailure) Unwrap() error { return e.Err }

// MixedCurrencyError is returned when a sum would combine different currencies.
type MixedCurrencyError struct {
	Currencies []string
}

func (e *MixedCurrencyError) Error() string {
	return fmt.Sprintf("cannot sum amounts in different currencies: %s", strings.Join(e.Currencies, ", "))
}

func (e *MixedCurrencyError) Unwrap() error { return ErrMixedCurrency }
