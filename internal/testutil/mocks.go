// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides test doubles for the domain ports.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/janderssonse/skid/internal/domain"
	"github.com/stretchr/testify/mock"
)

// ErrFileNotFound is returned by StaticFiles for unregistered paths.
var ErrFileNotFound = errors.New("static file not found")

// MockIdentityResolver mocks the IdentityResolver port for testing.
type MockIdentityResolver struct {
	mock.Mock
}

// PrimaryGID mocks primary GID resolution.
func (m *MockIdentityResolver) PrimaryGID(ctx context.Context, username string) (domain.GID, error) {
	args := m.Called(ctx, username)
	if gid, ok := args.Get(0).(domain.GID); ok {
		return gid, args.Error(1)
	}

	return 0, args.Error(1)
}

// CurrentUsername mocks current user resolution.
func (m *MockIdentityResolver) CurrentUsername(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockFileReader mocks the FileReader port for testing.
type MockFileReader struct {
	mock.Mock
}

// ReadFile mocks reading a file.
func (m *MockFileReader) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockCommandRunner mocks the CommandRunner port for testing.
type MockCommandRunner struct {
	mock.Mock
}

// ExecuteWithOutput mocks command execution with output.
func (m *MockCommandRunner) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	callArgs := m.Called(ctx, name, args)
	return callArgs.String(0), callArgs.Error(1)
}

// CommandExists mocks checking command availability.
func (m *MockCommandRunner) CommandExists(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

// StaticFiles is a FileReader serving fixed contents from memory.
type StaticFiles map[string]string

// ReadFile returns the registered contents of path.
func (s StaticFiles) ReadFile(path string) ([]byte, error) {
	content, ok := s[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
	}

	return []byte(content), nil
}

// StaticIdentity is an IdentityResolver backed by a username to GID map.
type StaticIdentity struct {
	Current string
	GIDs    map[string]domain.GID
}

// PrimaryGID returns the registered GID of username.
func (s StaticIdentity) PrimaryGID(_ context.Context, username string) (domain.GID, error) {
	gid, ok := s.GIDs[username]
	if !ok {
		return 0, fmt.Errorf("%s: %w", username, domain.ErrUnknownUser)
	}

	return gid, nil
}

// CurrentUsername returns the configured current user.
func (s StaticIdentity) CurrentUsername(context.Context) (string, error) {
	if s.Current == "" {
		return "", domain.ErrUnknownUser
	}

	return s.Current, nil
}

// RecordingLogger captures Progressf messages.
type RecordingLogger struct {
	mu       sync.Mutex
	Messages []string
}

// Progressf records the formatted message.
func (l *RecordingLogger) Progressf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Messages = append(l.Messages, fmt.Sprintf(format, args...))
}

// Contains reports whether any recorded message contains substr.
func (l *RecordingLogger) Contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, msg := range l.Messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}

	return false
}
