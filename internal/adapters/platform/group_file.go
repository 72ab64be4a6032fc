// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/janderssonse/skid/internal/domain"
)

var (
	// ErrShortRead is returned when a file yields fewer bytes than its size.
	ErrShortRead = errors.New("short read")
	// ErrSizeChanged is returned when a file holds more bytes than its size.
	ErrSizeChanged = errors.New("file size changed while reading")
	// ErrLockTimeout is returned when a shared lock cannot be taken in time.
	ErrLockTimeout = errors.New("timed out waiting for shared lock")
)

const (
	// DefaultLockTimeout bounds the wait for a shared lock on the group file.
	DefaultLockTimeout = 5 * time.Second

	lockRetryDelay = 50 * time.Millisecond
)

// GroupFileReader implements the FileReader port. It sizes the open file and
// reads exactly that many bytes, optionally under a shared flock(2).
type GroupFileReader struct {
	lock        bool
	lockTimeout time.Duration
	log         domain.Logger
}

// NewGroupFileReader creates a reader. When lock is true every read holds a
// shared lock on the file for its duration.
func NewGroupFileReader(lock bool, lockTimeout time.Duration, log domain.Logger) *GroupFileReader {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}

	if log == nil {
		log = domain.NopLogger{}
	}

	return &GroupFileReader{
		lock:        lock,
		lockTimeout: lockTimeout,
		log:         log,
	}
}

// ReadFile reads path completely. The size is taken from the open file after
// any lock is held. Fewer bytes than that size fail with ErrShortRead, more
// fail with ErrSizeChanged.
func (g *GroupFileReader) ReadFile(path string) ([]byte, error) {
	if g.lock {
		unlock, err := g.rlock(path)
		if err != nil {
			return nil, err
		}

		defer unlock()
	}

	// #nosec G304 - reading the configured group database is the purpose of this adapter
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}

	return g.readExact(file, path, info.Size())
}

func (g *GroupFileReader) readExact(r io.Reader, path string, size int64) ([]byte, error) {
	buf := make([]byte, size)

	var n int

	for n < len(buf) {
		read, err := r.Read(buf[n:])
		n += read

		if errors.Is(err, io.EOF) {
			if n == len(buf) {
				g.log.Progressf("%s: EOF reached with %d of %d bytes read, continuing", path, n, size)

				return buf, nil
			}

			return nil, fmt.Errorf("%s: read %d of %d bytes: %w", path, n, size, ErrShortRead)
		}

		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	var extra [1]byte

	read, err := io.ReadAtLeast(r, extra[:], 1)
	if read > 0 {
		return nil, fmt.Errorf("%s: more than %d bytes: %w", path, size, ErrSizeChanged)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return buf, nil
}

func (g *GroupFileReader) rlock(path string) (func(), error) {
	fileLock := flock.New(path, flock.SetFlag(os.O_RDONLY))

	ctx, cancel := context.WithTimeout(context.Background(), g.lockTimeout)
	defer cancel()

	locked, err := fileLock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", path, ErrLockTimeout)
		}

		return nil, fmt.Errorf("%s: failed to acquire shared lock: %w", path, err)
	}

	if !locked {
		return nil, fmt.Errorf("%s: %w", path, ErrLockTimeout)
	}

	g.log.Progressf("Acquired shared lock on %s", path)

	return func() {
		if err := fileLock.Unlock(); err != nil {
			g.log.Progressf("failed to release lock on %s: %v", path, err)
		}
	}, nil
}
