package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientStock indicates that an order asked for more units than are in stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrForbidden indicates that the authenticated user may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrAggregation indicates that the storage engine returned an empty or
// malformed aggregation result.
var ErrAggregation = errors.New("aggregation failure")

// AppError is an operational error carrying an HTTP-style status class and a
// human-readable message. It unwraps to one of the sentinel errors above so
// callers can keep using errors.Is.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with an explicit status and an optional cause.
func NewAppError(status int, message string, cause error) *AppError {
	return &AppError{Status: status, Message: message, Err: cause}
}

// NewNotFoundError creates a 404 AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError creates a 400 AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewDuplicateError creates a 409 AppError that matches ErrDuplicate.
func NewDuplicateError(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

// NewInsufficientStockError creates a 400 AppError that matches ErrInsufficientStock.
func NewInsufficientStockError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message, Err: ErrInsufficientStock}
}

// NewAggregationError creates a 500 AppError that matches ErrAggregation.
func NewAggregationError(message string) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: message, Err: ErrAggregation}
}

// StatusOf returns the HTTP status carried by err, or 500 for unexpected errors.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
