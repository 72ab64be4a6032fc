// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "fmt"

// ExitError provides specific exit codes for different failure modes.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exit codes follow standard Unix conventions for better scripting support.
const (
	ExitSuccess       = 0 // Operation completed successfully
	ExitGeneralError  = 1 // Generic failure (catch-all)
	ExitUsageError    = 2 // Invalid command line usage
	ExitConfigError   = 3 // Configuration file error
	ExitNotFoundError = 5 // GID not compatible, record did not match

	ExitSystemError   = 12 // Group file unreadable
	ExitIdentityError = 13 // Primary group lookup failed
	ExitCapacityError = 15 // Too many matching records
)

// ExitCodeFor maps the kind of a group error to its exit code.
func ExitCodeFor(err error) int {
	switch KindOf(err) {
	case KindInvalidArgument:
		return ExitUsageError
	case KindIdentityResolution:
		return ExitIdentityError
	case KindGroupFileUnavailable:
		return ExitSystemError
	case KindCapacityExceeded:
		return ExitCapacityError
	default:
		return ExitGeneralError
	}
}
