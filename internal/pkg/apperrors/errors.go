package apperrors

import "errors"

// Snapshot errors. ErrSnapshotLoad is fatal at startup; on reload it is
// reported and the previous snapshot stays active.
var (
	ErrSnapshotLoad    = errors.New("graph snapshot load failed")
	ErrSnapshotInvalid = errors.New("graph snapshot failed validation")
)

// Dispatch errors (caller contract violations, answered as text)
var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidParameter = errors.New("invalid parameter value")
)

// Resolution outcomes. Ambiguity and not-found are expected states, not
// failures; they carry distinct reply wording.
var (
	ErrAmbiguous = errors.New("parameter matches multiple entities")
	ErrNotFound  = errors.New("no matching entity")
)

// Pagination errors
var (
	ErrNoCursor        = errors.New("no pagination cursor for conversation")
	ErrCursorExhausted = errors.New("pagination cursor exhausted")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewSnapshotLoadError creates a load error with a message
func NewSnapshotLoadError(message string) error {
	return &CustomError{
		Err:     ErrSnapshotLoad,
		Message: message,
	}
}

// NewValidationError creates a snapshot validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrSnapshotInvalid,
		Message: message,
	}
}
