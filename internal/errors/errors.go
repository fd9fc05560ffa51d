package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Error codes
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeRejected     = "GUESS_REJECTED"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeStoreFailure = "STORE_FAILURE"
	ErrCodeUnavailable  = "UNAVAILABLE"
)

// Rejection reasons for guesses that never reach the evaluator.
const (
	ReasonEmptyGuess      = "empty_guess"
	ReasonDuplicateGuess  = "duplicate_guess"
	ReasonBudgetExhausted = "budget_exhausted"
	ReasonGameOver        = "game_over"
	ReasonInFlight        = "in_flight"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "GUESS_REJECTED")
	Reason  string // Machine-readable detail for rejections (optional)
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewRejectedError creates a GUESS_REJECTED error. The message is meant to
// be shown to the player as-is.
func NewRejectedError(reason, message string) *AppError {
	return &AppError{
		Code:    ErrCodeRejected,
		Reason:  reason,
		Message: message,
		Status:  422,
	}
}

// NewConflictError creates a CONFLICT error for a submission that overlaps
// one still being processed.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Reason:  ReasonInFlight,
		Message: message,
		Status:  409,
	}
}

// NewStoreError wraps a failed call to a puzzle, progress or stats store.
// Ops ending in "_fetch" are reads; everything else is treated as a write.
func NewStoreError(op string, err error) *AppError {
	msg := "We could not save your guess. Please try again."
	if strings.HasSuffix(op, "_fetch") {
		msg = "We could not load today's game. Please try again."
	}
	return &AppError{
		Code:    ErrCodeStoreFailure,
		Reason:  op,
		Message: msg,
		Status:  502,
		Err:     err,
	}
}

// NewUnavailableError creates an UNAVAILABLE error for work that cannot be
// accepted right now, such as a full job queue.
func NewUnavailableError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeUnavailable,
		Message: message,
		Status:  503,
		Err:     err,
	}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsRejected reports whether err is a guess rejection or in-flight conflict.
func IsRejected(err error) bool {
	appErr, ok := As(err)
	return ok && (appErr.Code == ErrCodeRejected || appErr.Code == ErrCodeConflict)
}

// IsStoreFailure reports whether err came from a failing collaborator store.
func IsStoreFailure(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeStoreFailure
}

// HasReason reports whether err is an AppError carrying reason.
func HasReason(err error, reason string) bool {
	appErr, ok := As(err)
	return ok && appErr.Reason == reason
}
