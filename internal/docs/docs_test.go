// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"config", "exit-codes", "format"}, Topics())
}

func TestLookup(t *testing.T) {
	t.Parallel()

	source, err := Lookup("format")
	require.NoError(t, err)
	assert.Contains(t, source, "name:password:gid:user_list")

	_, err = Lookup("nope")
	require.ErrorIs(t, err, ErrUnknownTopic)

	_, err = Lookup("../docs")
	require.ErrorIs(t, err, ErrUnknownTopic)
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Exit codes", Title("exit-codes"))
	assert.Equal(t, "nope", Title("nope"))
}

func TestRender(t *testing.T) {
	t.Parallel()

	out, err := Render("# Exit codes\n\nplain text\n")
	require.NoError(t, err)
	assert.Contains(t, out, "plain text")
}
