package errs

import "errors"

// Code classifies a pipeline failure. Codes are stable and surface
// verbatim in API responses.
type Code string

const (
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeFileTooLarge     Code = "FILE_TOO_LARGE"
	CodeInvalidFileType  Code = "INVALID_FILE_TYPE"
	CodeEntityNotFound   Code = "ENTITY_NOT_FOUND"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeStorageError     Code = "STORAGE_ERROR"
	CodeDatabaseError    Code = "DATABASE_ERROR"
	CodeProcessingFailed Code = "PROCESSING_FAILED"
	CodeVirusDetected    Code = "VIRUS_DETECTED"
	CodeUnexpected       Code = "UNEXPECTED_ERROR"
)

// Retryable reports whether a failure with this code may succeed on retry.
func (c Code) Retryable() bool {
	switch c {
	case CodeStorageError, CodeDatabaseError, CodeProcessingFailed, CodeUnexpected:
		return true
	default:
		return false
	}
}

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknownProfile = errors.New("unknown processing profile")
	ErrUnknownEntity  = errors.New("unknown entity type")
)

// Error carries a Code alongside the wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New -.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap -.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the Code from err, defaulting to UNEXPECTED_ERROR.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if errors.Is(err, ErrRecordNotFound) {
		return CodeEntityNotFound
	}
	return CodeUnexpected
}
