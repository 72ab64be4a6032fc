// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"strings"
)

// ErrorKind classifies failures of a compatible-GID resolution.
type ErrorKind int

const (
	// KindInvalidArgument is an empty or unusable username.
	KindInvalidArgument ErrorKind = iota + 1
	// KindIdentityResolution means the primary GID could not be resolved.
	KindIdentityResolution
	// KindGroupFileUnavailable means the group file could not be read.
	KindGroupFileUnavailable
	// KindCapacityExceeded means more matches were found than the configured maximum.
	KindCapacityExceeded
	// KindAllocationFailed is kept for parity with callers that map every kind
	// to an exit status. The Go runtime aborts on allocation failure instead
	// of returning, so the resolver never produces it.
	KindAllocationFailed
	// KindMalformedRecord marks a group(5) line that failed validation. It is
	// skipped during scanning and never surfaced by the resolver.
	KindMalformedRecord
)

// Domain sentinel errors, one per kind, for use with errors.Is.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrIdentityResolution   = errors.New("identity resolution failed")
	ErrGroupFileUnavailable = errors.New("group file unavailable")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrAllocationFailed     = errors.New("allocation failed")
	ErrMalformedRecord      = errors.New("malformed group record")
)

func (k ErrorKind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}

	return "unknown error"
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindIdentityResolution:
		return ErrIdentityResolution
	case KindGroupFileUnavailable:
		return ErrGroupFileUnavailable
	case KindCapacityExceeded:
		return ErrCapacityExceeded
	case KindAllocationFailed:
		return ErrAllocationFailed
	case KindMalformedRecord:
		return ErrMalformedRecord
	default:
		return nil
	}
}

// GroupError describes a failed operation on a user's group data.
type GroupError struct {
	Kind     ErrorKind
	Op       string // operation, e.g. "compatible-gids"
	Username string
	Err      error // underlying cause, may be nil
}

// NewGroupError creates a GroupError.
func NewGroupError(kind ErrorKind, op, username string, err error) *GroupError {
	return &GroupError{
		Kind:     kind,
		Op:       op,
		Username: username,
		Err:      err,
	}
}

func (e *GroupError) Error() string {
	var b strings.Builder

	b.WriteString(e.Op)

	if e.Username != "" {
		b.WriteString(" ")
		b.WriteString(e.Username)
	}

	b.WriteString(": ")
	b.WriteString(e.Kind.String())

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *GroupError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the kind.
func (e *GroupError) Is(target error) bool {
	s := e.Kind.sentinel()

	return s != nil && target == s
}

// KindOf returns the kind of the first GroupError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var groupErr *GroupError
	if errors.As(err, &groupErr) {
		return groupErr.Kind
	}

	return 0
}

// ErrorInfo provides user-friendly error information.
type ErrorInfo struct {
	Message     string   // User-friendly message
	Suggestions []string // Actionable suggestions
	ShowDetails bool     // Whether to show technical details
}

// GetErrorInfo analyzes an error and returns user-friendly information.
func GetErrorInfo(err error, verbose bool) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}

	info := ErrorInfo{ShowDetails: verbose}

	switch KindOf(err) {
	case KindInvalidArgument:
		info.Message = "Invalid username"
		info.Suggestions = []string{"Pass a non-empty login name without ':' or ','"}
	case KindIdentityResolution:
		info.Message = "Could not resolve the user's primary group"
		info.Suggestions = []string{"Check that the user exists: id <user>", "Try --resolver native"}
	case KindGroupFileUnavailable:
		info.Message = "Could not read the group file"
		info.Suggestions = []string{"Check that the group file exists and is readable", "Override it with --group-file"}
	case KindCapacityExceeded:
		info.Message = "Too many matching groups"
		info.Suggestions = []string{"Raise max_records in the configuration", "Use --max-records"}
	case KindAllocationFailed:
		info.Message = "Out of memory"
		info.Suggestions = []string{"Retry with fewer groups"}
	default:
		info.Message = "Operation failed"
		info.Suggestions = []string{"Run with --verbose for more details"}
	}

	return info
}

// FormatErrorMessage formats an error for display.
func FormatErrorMessage(err error, verbose bool) string {
	info := GetErrorInfo(err, verbose)

	var result strings.Builder

	result.WriteString(info.Message)

	if info.ShowDetails && err != nil {
		result.WriteString("\n  Technical details: ")
		result.WriteString(err.Error())
	}

	if len(info.Suggestions) > 0 && !verbose {
		result.WriteString(" (")
		result.WriteString(info.Suggestions[0])
		result.WriteString(")")
	} else if len(info.Suggestions) > 0 {
		result.WriteString("\n  Suggestions:")

		for _, suggestion := range info.Suggestions {
			result.WriteString("\n    • ")
			result.WriteString(suggestion)
		}
	}

	return result.String()
}
