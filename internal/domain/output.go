// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

// OutputPort defines the interface for presenting command results.
// This is a domain port that adapters implement for different output formats.
type OutputPort interface {
	// Success outputs a success message with optional structured data
	Success(message string, data interface{}) error

	// Error outputs an error message
	Error(message string) error

	// Info outputs an informational message
	Info(message string) error

	// Table outputs tabular data
	Table(headers []string, rows [][]string) error

	// IsQuiet returns true if output should be suppressed
	IsQuiet() bool
}

// CheckResult is the outcome of a compatibility check for a single GID.
type CheckResult struct {
	Username   string `json:"username"`
	GID        GID    `json:"gid"`
	Compatible bool   `json:"compatible"`
}

// MatchResult is the outcome of matching a user against one group record.
type MatchResult struct {
	Username string `json:"username"`
	Record   string `json:"record"`
	Matched  bool   `json:"matched"`
	GID      GID    `json:"gid"`
}
