// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
	"errors"
)

// ErrUnknownUser is returned when a user has no identity entry.
var ErrUnknownUser = errors.New("unknown user")

// FileReader loads a whole file into memory.
type FileReader interface {
	// ReadFile returns the complete contents of path.
	ReadFile(path string) ([]byte, error)
}

// IdentityResolver maps users to their identity data.
type IdentityResolver interface {
	// PrimaryGID returns the primary group of username.
	PrimaryGID(ctx context.Context, username string) (GID, error)

	// CurrentUsername returns the login name of the calling user.
	CurrentUsername(ctx context.Context) (string, error)
}

// CommandRunner defines the interface for executing system commands.
type CommandRunner interface {
	// ExecuteWithOutput runs a command and returns the output.
	ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error)

	// CommandExists checks if a command is available on the system.
	CommandExists(name string) bool
}

// Logger receives diagnostic messages that are only shown in verbose mode.
type Logger interface {
	Progressf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

// Progressf does nothing.
func (NopLogger) Progressf(string, ...any) {}
