// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

// Package handlers implements CLI command execution logic.
package handlers

import (
	"errors"

	cliAdapter "github.com/janderssonse/skid/internal/adapters/cli"
	"github.com/janderssonse/skid/internal/domain"
)

// BaseHandler provides common functionality for all command handlers.
type BaseHandler struct {
	Verbose bool
	JSON    bool
	Quiet   bool
	Plain   bool
	Output  domain.OutputPort
}

// NewBaseHandler creates a new base handler with the given configuration.
// A nil output writes to stdout in the format selected by the flags.
func NewBaseHandler(verbose, json, quiet, plain bool, output domain.OutputPort) *BaseHandler {
	if output == nil {
		output = cliAdapter.OutputFromContext(json, plain, quiet)
	}

	return &BaseHandler{
		Verbose: verbose,
		JSON:    json,
		Quiet:   quiet,
		Plain:   plain,
		Output:  output,
	}
}

// GetOutput returns the output port for CLI rendering.
func (h *BaseHandler) GetOutput() domain.OutputPort {
	if h.Output == nil {
		h.Output = cliAdapter.OutputFromContext(h.JSON, h.Plain, h.Quiet)
	}

	return h.Output
}

// ExitError converts a resolver error into an ExitError carrying a user-facing message.
func (h *BaseHandler) ExitError(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	message := cliAdapter.ErrorHeadline(err) + ": " + domain.FormatErrorMessage(err, h.Verbose)

	return domain.NewExitError(domain.ExitCodeFor(err), message, err)
}
