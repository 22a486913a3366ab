package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Reactive primitive errors
const (
	// ErrCodeInvalidSource indicates a pipeline was constructed over a
	// disposed or otherwise inert source cell.
	ErrCodeInvalidSource ErrorCode = "INVALID_SOURCE"
	// ErrCodeSourceDisposed indicates an operation on a disposed cell.
	ErrCodeSourceDisposed ErrorCode = "SOURCE_DISPOSED"
	// ErrCodeInvalidDelay indicates a negative debounce or throttle duration.
	ErrCodeInvalidDelay ErrorCode = "INVALID_DELAY"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeStorage indicates a persistence layer error.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeStorage: true,
}

// IsRetryableCode reports whether operations failing with the given code
// may be retried.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
