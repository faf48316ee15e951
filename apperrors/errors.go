// Package apperrors provides the error taxonomy shared by services and HTTP handlers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents a standardized internal error code.
type ErrorCode string

const (
	CodeInvalidInput         ErrorCode = "INVALID_INPUT"
	CodeDivisionByZeroRisk   ErrorCode = "DIVISION_BY_ZERO_RISK"
	CodeNarrativeUnavailable ErrorCode = "NARRATIVE_UNAVAILABLE"
	CodeRouteSynthesisFailed ErrorCode = "ROUTE_SYNTHESIS_FAILED"
	CodeRateLimited          ErrorCode = "RATE_LIMITED"
	CodeInternal             ErrorCode = "INTERNAL"
)

// Sentinels usable with errors.Is.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrDivisionByZeroRisk   = errors.New("division by zero risk")
	ErrNarrativeUnavailable = errors.New("narrative unavailable")
	ErrRouteSynthesisFailed = errors.New("route synthesis failed")
)

// Error is a structured application error.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"-"`

	cause error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// InvalidInput reports a request that failed validation before any computation.
func InvalidInput(format string, args ...interface{}) *Error {
	return &Error{
		Code:      CodeInvalidInput,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now().UTC(),
		cause:     ErrInvalidInput,
	}
}

// DivisionByZero reports a zero divisor caught in a numeric step.
func DivisionByZero(operation string) *Error {
	return &Error{
		Code:      CodeDivisionByZeroRisk,
		Message:   "zero divisor in " + operation,
		Timestamp: time.Now().UTC(),
		cause:     ErrDivisionByZeroRisk,
	}
}

// NarrativeUnavailable wraps a failed or unparseable enrichment call.
func NarrativeUnavailable(kind string, err error) *Error {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &Error{
		Code:      CodeNarrativeUnavailable,
		Message:   "narrative enrichment unavailable for " + kind,
		Details:   details,
		Timestamp: time.Now().UTC(),
		cause:     ErrNarrativeUnavailable,
	}
}

// RouteSynthesisFailed reports that no archetype produced a route.
func RouteSynthesisFailed(failures int, last error) *Error {
	details := ""
	if last != nil {
		details = last.Error()
	}
	return &Error{
		Code:      CodeRouteSynthesisFailed,
		Message:   fmt.Sprintf("all %d route archetypes failed", failures),
		Details:   details,
		Timestamp: time.Now().UTC(),
		cause:     ErrRouteSynthesisFailed,
	}
}

// RateLimited reports a client that exhausted its request budget.
func RateLimited(retryAfter time.Duration) *Error {
	return &Error{
		Code:      CodeRateLimited,
		Message:   "rate limit exceeded",
		Details:   fmt.Sprintf("retry after %s", retryAfter.Round(time.Second)),
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error onto the status code returned at the boundary.
// Division-by-zero risks surface as invalid input.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeInvalidInput, CodeDivisionByZeroRisk:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicCode is the code reported to callers.
func PublicCode(err error) ErrorCode {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return CodeInternal
	}
	if appErr.Code == CodeDivisionByZeroRisk {
		return CodeInvalidInput
	}
	return appErr.Code
}
