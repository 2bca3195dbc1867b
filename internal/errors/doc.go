// Package apperrors defines structured error types for the arithmetic core
// and the CLI. Index, value and range-overflow failures carry typed details
// and match the ErrIndex, ErrValue and ErrRangeOverflow sentinels through
// errors.Is; CLI-level failures map to process exit codes.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapper types implement Unwrap() to support errors.Is() and errors.As().
package apperrors
