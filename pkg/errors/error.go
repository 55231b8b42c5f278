// Package errors provides structured error handling with typed error codes.
//
// Error codes follow the ingestion error taxonomy:
//   - General errors (1-99): Unknown and general errors
//   - Input validation errors (100-199): malformed run configuration or user input; the run
//     aborts before any network or file activity
//   - Resolution errors (200-299): the index name resolves to no symbols; the run aborts
//   - Per-symbol errors (300-399): invalid symbol, empty fetch, fault while processing one
//     symbol; the symbol is skipped and the run continues
//   - Aggregation errors (400-499): combined output requested but nothing was collected
//   - Market data errors (700-799): provider fetching and parsing errors
//   - Output errors (800-899): file writing errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeIndexNotFound, "no stocks found for index %s", index)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch chart", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeIndexNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsInputError reports whether err belongs to the input validation category.
func IsInputError(err error) bool {
	code := GetCode(err)

	return code >= 100 && code < 200
}

// SymbolError records why a single symbol was dropped from a run.
// It never aborts the run; the collector logs it and moves on.
type SymbolError struct {
	Symbol string
	Code   ErrorCode
	Cause  error
}

// NewSymbolError creates a new SymbolError.
func NewSymbolError(symbol string, code ErrorCode, cause error) *SymbolError {
	return &SymbolError{
		Symbol: symbol,
		Code:   code,
		Cause:  cause,
	}
}

// Error implements the error interface.
func (e *SymbolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] symbol %s skipped: %v", e.Code, e.Symbol, e.Cause)
	}

	return fmt.Sprintf("[%d] symbol %s skipped", e.Code, e.Symbol)
}

// Unwrap returns the underlying error cause.
func (e *SymbolError) Unwrap() error {
	return e.Cause
}

// IsSymbolError checks if an error is a SymbolError.
// It uses errors.As to check the error chain.
func IsSymbolError(err error) bool {
	var symbolErr *SymbolError

	return errors.As(err, &symbolErr)
}
