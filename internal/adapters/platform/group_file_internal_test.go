// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/janderssonse/skid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eofReader returns all of data together with io.EOF in a single call.
type eofReader struct {
	data []byte
	done bool
}

func (r *eofReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}

	r.done = true
	n := copy(p, r.data)

	return n, io.EOF
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("input/output error")
}

func TestReadExact_EOFWithMatchingCountIsBenign(t *testing.T) {
	t.Parallel()

	logger := &testutil.RecordingLogger{}
	g := NewGroupFileReader(false, 0, logger)

	data, err := g.readExact(&eofReader{data: []byte("root:x:0:\n")}, "group", 10)
	require.NoError(t, err)
	assert.Equal(t, "root:x:0:\n", string(data))
	assert.True(t, logger.Contains("EOF reached with 10 of 10 bytes read"))
}

func TestReadExact_ShortRead(t *testing.T) {
	t.Parallel()

	g := NewGroupFileReader(false, 0, nil)

	_, err := g.readExact(&eofReader{data: []byte("root")}, "group", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShortRead)
	assert.Contains(t, err.Error(), "read 4 of 10 bytes")
}

func TestReadExact_TrailingData(t *testing.T) {
	t.Parallel()

	g := NewGroupFileReader(false, 0, nil)

	_, err := g.readExact(strings.NewReader("root:x:0:\nb:x:2:u\n"), "group", 10)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSizeChanged)
	assert.Contains(t, err.Error(), "more than 10 bytes")

	data, err := g.readExact(strings.NewReader("root:x:0:\n"), "group", 10)
	require.NoError(t, err)
	assert.Equal(t, "root:x:0:\n", string(data))
}

func TestReadExact_ReadError(t *testing.T) {
	t.Parallel()

	g := NewGroupFileReader(false, 0, nil)

	_, err := g.readExact(failingReader{}, "group", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group: input/output error")
}
