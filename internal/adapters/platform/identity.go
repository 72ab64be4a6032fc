// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"context"
	"errors"
	"fmt"
	"os/user"
	"strconv"
	"strings"

	"github.com/janderssonse/skid/internal/domain"
)

// ErrEmptyOutput is returned when an identity command prints nothing.
var ErrEmptyOutput = errors.New("empty command output")

// Resolver names accepted by NewIdentityResolver.
const (
	ResolverShell  = "shell"
	ResolverNative = "native"
)

// ErrUnknownResolver is returned for an unsupported resolver name.
var ErrUnknownResolver = errors.New("unknown identity resolver")

// NewIdentityResolver returns the resolver registered under name.
func NewIdentityResolver(name string, runner domain.CommandRunner) (domain.IdentityResolver, error) {
	switch name {
	case ResolverShell:
		return NewShellIdentityResolver(runner), nil
	case ResolverNative:
		return NewNativeIdentityResolver(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResolver, name)
	}
}

// ShellIdentityResolver asks id(1) and whoami(1), the same tools an
// administrator would use from a shell.
type ShellIdentityResolver struct {
	runner domain.CommandRunner
}

// NewShellIdentityResolver creates a resolver that shells out through runner.
func NewShellIdentityResolver(runner domain.CommandRunner) *ShellIdentityResolver {
	return &ShellIdentityResolver{runner: runner}
}

// PrimaryGID runs "id -g -- username".
func (s *ShellIdentityResolver) PrimaryGID(ctx context.Context, username string) (domain.GID, error) {
	out, err := s.run(ctx, "id", "-g", "--", username)
	if err != nil {
		return 0, err
	}

	return parseGID(out)
}

// CurrentUsername runs "whoami".
func (s *ShellIdentityResolver) CurrentUsername(ctx context.Context) (string, error) {
	return s.run(ctx, "whoami")
}

func (s *ShellIdentityResolver) run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := s.runner.ExecuteWithOutput(ctx, name, args...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%s: %w", name, ErrEmptyOutput)
	}

	return out, nil
}

// NativeIdentityResolver uses the os/user package.
type NativeIdentityResolver struct {
	lookup  func(string) (*user.User, error)
	current func() (*user.User, error)
}

// NewNativeIdentityResolver creates a resolver backed by os/user.
func NewNativeIdentityResolver() *NativeIdentityResolver {
	return &NativeIdentityResolver{
		lookup:  user.Lookup,
		current: user.Current,
	}
}

// PrimaryGID looks up username and returns its primary group.
func (n *NativeIdentityResolver) PrimaryGID(_ context.Context, username string) (domain.GID, error) {
	u, err := n.lookup(username)
	if err != nil {
		var unknown user.UnknownUserError
		if errors.As(err, &unknown) {
			return 0, fmt.Errorf("%s: %w", username, domain.ErrUnknownUser)
		}

		return 0, err
	}

	return parseGID(u.Gid)
}

// CurrentUsername returns the login name of the process owner.
func (n *NativeIdentityResolver) CurrentUsername(context.Context) (string, error) {
	u, err := n.current()
	if err != nil {
		return "", err
	}

	return u.Username, nil
}

func parseGID(s string) (domain.GID, error) {
	gid, err := strconv.ParseUint(strings.TrimSpace(s), 10 /* base */, 32 /* bits */)
	if err != nil {
		return 0, fmt.Errorf("invalid gid %q: %w", s, err)
	}

	return domain.GID(gid), nil
}
