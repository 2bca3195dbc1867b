package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates the NTT product differs from the math/big reference.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorInput    = 5   // Indicates an index, value or range error on user input.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Sentinel errors for the arithmetic core. Every typed error below matches
// exactly one of them through errors.Is.
var (
	// ErrIndex reports an index outside a view's domain.
	ErrIndex = errors.New("index out of range")
	// ErrValue reports an argument with the right type but an invalid value.
	ErrValue = errors.New("invalid value")
	// ErrRangeOverflow reports a multiplication whose convolution could
	// exceed the transform modulus.
	ErrRangeOverflow = errors.New("convolution exceeds modulus")
	// ErrMismatch reports two multiplication backends disagreeing.
	ErrMismatch = errors.New("product mismatch")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates a multiplication failure while preserving the
// original cause.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation that exceeded its deadline.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// IndexError reports an index that falls outside [0, Length) after
// negative-index normalization.
type IndexError struct {
	// View names the addressed unit ("bits" or "words").
	View string
	// Index is the index as supplied by the caller.
	Index int
	// Length is the view length at the time of the access.
	Length int
}

// Error returns a formatted message describing the bad index.
func (e IndexError) Error() string {
	return fmt.Sprintf("%s index out of range: %d (length %d)", e.View, e.Index, e.Length)
}

// Is makes IndexError match ErrIndex.
func (e IndexError) Is(target error) bool { return target == ErrIndex }

// NewIndexError builds an IndexError for the given view.
func NewIndexError(view string, index, length int) error {
	return IndexError{View: view, Index: index, Length: length}
}

// ValueError reports an invalid argument value, such as a slice assignment
// of the wrong length, an unsupported chunk width or a coefficient that is
// not reduced modulo the transform prime.
type ValueError struct {
	// Message explains what was wrong with the value.
	Message string
}

// Error returns the error message for a ValueError.
func (e ValueError) Error() string { return e.Message }

// Is makes ValueError match ErrValue.
func (e ValueError) Is(target error) bool { return target == ErrValue }

// NewValueError creates a ValueError with a formatted message.
func NewValueError(format string, a ...any) error {
	return ValueError{Message: fmt.Sprintf(format, a...)}
}

// RangeOverflowError reports that no chunk width keeps the convolution of
// the operands below the modulus.
type RangeOverflowError struct {
	// Width is the smallest chunk width that was tried.
	Width uint
	// Terms is the number of products summed into one coefficient.
	Terms int
	// Modulus is the largest modulus that was tried.
	Modulus uint64
}

// Error returns a formatted message describing the overflow.
func (e RangeOverflowError) Error() string {
	return fmt.Sprintf("convolution of %d terms of %d bits exceeds modulus %#x", e.Terms, e.Width, e.Modulus)
}

// Is makes RangeOverflowError match ErrRangeOverflow.
func (e RangeOverflowError) Is(target error) bool { return target == ErrRangeOverflow }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status used by the CLI.
func ExitCode(err error) int {
	var cfg ConfigError
	var timeout TimeoutError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeout):
		return ExitErrorTimeout
	case errors.As(err, &cfg):
		return ExitErrorConfig
	case errors.Is(err, ErrMismatch):
		return ExitErrorMismatch
	case errors.Is(err, ErrIndex), errors.Is(err, ErrValue), errors.Is(err, ErrRangeOverflow):
		return ExitErrorInput
	default:
		return ExitErrorGeneric
	}
}
