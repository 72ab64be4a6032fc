// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCompatibleGIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		primary     GID
		memberships []Membership
		wantGIDs    []GID
	}{
		{
			name:     "no memberships",
			primary:  1000,
			wantGIDs: []GID{1000},
		},
		{
			name:        "discovery order kept",
			primary:     1000,
			memberships: []Membership{{"docker", 134}, {"users", 100}},
			wantGIDs:    []GID{134, 100, 1000},
		},
		{
			name:        "primary found in file is moved last",
			primary:     100,
			memberships: []Membership{{"users", 100}, {"docker", 134}},
			wantGIDs:    []GID{134, 100},
		},
		{
			name:        "duplicates between groups are kept",
			primary:     1000,
			memberships: []Membership{{"a", 5}, {"b", 5}},
			wantGIDs:    []GID{5, 5, 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			set := NewCompatibleGIDs("user", tt.primary, tt.memberships)
			assert.Equal(t, tt.wantGIDs, set.GIDs)
			assert.Equal(t, tt.primary, set.Primary())
			assert.Equal(t, len(tt.wantGIDs), set.Len())
		})
	}
}

func TestCompatibleGIDs_Terminated(t *testing.T) {
	t.Parallel()

	set := NewCompatibleGIDs("user", 1000, []Membership{{"users", 100}, {"docker", 134}})

	assert.Equal(t, []GID{100, 134, 1000, 0, 0}, set.Terminated(2))
	assert.Equal(t, []GID{100, 134, 1000, 0}, set.Terminated(1))
	assert.Equal(t, []GID{100, 134, 1000}, set.Terminated(0))
	assert.Equal(t, []GID{100, 134, 1000}, set.Terminated(-3))

	// The result is a copy.
	out := set.Terminated(0)
	out[0] = 42
	assert.Equal(t, GID(100), set.GIDs[0])
}

func TestCompatibleGIDs_Queries(t *testing.T) {
	t.Parallel()

	set := NewCompatibleGIDs("user", 1000, []Membership{{"users", 100}})

	assert.True(t, set.Contains(100))
	assert.True(t, set.Contains(1000))
	assert.False(t, set.Contains(0))
	assert.Equal(t, []GID{100}, set.Supplementary())

	empty := &CompatibleGIDs{}
	assert.Nil(t, empty.Supplementary())
}
