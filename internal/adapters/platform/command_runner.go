// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides the operating-system adapters behind the domain ports.
package platform

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/janderssonse/skid/internal/domain"
)

// CommandRunner implements the CommandRunner port for real system commands.
type CommandRunner struct {
	log domain.Logger
}

// NewCommandRunner creates a new command runner. A nil logger discards diagnostics.
func NewCommandRunner(log domain.Logger) *CommandRunner {
	if log == nil {
		log = domain.NopLogger{}
	}

	return &CommandRunner{log: log}
}

// ExecuteWithOutput runs a command and returns its standard output.
func (r *CommandRunner) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	r.log.Progressf("Executing (with output): %s %s", name, strings.Join(args, " "))

	// #nosec G204 - command names are fixed by the callers in this package
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("command failed: %w (stderr: %s)", err, msg)
		}

		return "", fmt.Errorf("command failed: %w", err)
	}

	return string(output), nil
}

// CommandExists checks if a command is available on the system.
func (r *CommandRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}
