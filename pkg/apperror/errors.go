package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error by how the operator should react to it.
type Kind int

const (
	// KindValidation rejects the attempted operation before any state changes.
	// The operator must correct the input and retry.
	KindValidation Kind = iota
	// KindPersistence means a local durable write failed. The operation was
	// aborted entirely and may be retried.
	KindPersistence
	// KindSync means the remote ledger or catalog service could not be
	// reached or rejected a batch. Local state is untouched; retryable.
	KindSync
	// KindCacheStale means the catalog cache has never been populated or a
	// lookup missed. Not fatal; prompts a catalog refresh.
	KindCacheStale
	// KindGeneric covers everything else (not found, bad request, internal).
	KindGeneric
)

// AppError represents an application error with an HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"-"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Kind: KindGeneric, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Kind: KindGeneric, Message: "Bad request"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Kind: KindGeneric, Message: "Unauthorized"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Kind: KindGeneric, Message: "Internal server error"}

	// ErrCustomerRequiredForCredit gates checkout: a sale that leaves a due
	// amount must be bound to a customer before it can be completed.
	ErrCustomerRequiredForCredit = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "A customer must be selected for a sale that is not fully paid",
	}

	// ErrSyncInProgress is returned when a sync trigger arrives while a
	// previous run is still in flight.
	ErrSyncInProgress = &AppError{
		Code:    http.StatusConflict,
		Kind:    KindSync,
		Message: "A synchronization run is already in progress",
	}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Kind: KindGeneric, Message: message}
}

// NewValidationError creates a checkout validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewFieldValidationError creates a validation error carrying field details
func NewFieldValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewPersistenceError wraps a failed local durable write. The sale that
// triggered it is never considered completed.
func NewPersistenceError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindPersistence,
		Message: message,
	}
}

// NewSyncError wraps a failed remote submission or catalog pull
func NewSyncError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindSync,
		Message: message,
	}
}

// NewCacheStaleError signals a missing or never-populated catalog snapshot
func NewCacheStaleError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindCacheStale,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindGeneric,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindGeneric,
		Message: message,
	}
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindGeneric,
		Message: err.Error(),
	}
}
