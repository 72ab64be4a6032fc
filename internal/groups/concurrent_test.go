// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package groups_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/janderssonse/skid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ConcurrentCallsAgree(t *testing.T) {
	t.Parallel()

	r := newTestResolver(sampleGroupFile, userIdentity(), 0)

	const workers = 32

	results := make([][]domain.GID, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			set, err := r.CompatibleGIDs(context.Background(), "user")
			errs[i] = err

			if set != nil {
				results[i] = set.GIDs
			}
		}()
	}

	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, []domain.GID{100, 134, 1000}, results[i])
	}
}

// TestResolver_SetProperties checks the invariants of every computed set over
// generated group files.
func TestResolver_SetProperties(t *testing.T) {
	t.Parallel()

	members := []string{"", "user", "joe,user", "user,joe", "username", "xuser", "joe", "user,user"}

	for seed := range 64 {
		var b strings.Builder

		for line := range 12 {
			idx := (seed*7 + line*3) % len(members)
			gid := (seed + line*5) % 9
			fmt.Fprintf(&b, "g%d:x:%d:%s\n", line, gid, members[idx])
		}

		primary := domain.GID(seed % 9)
		identity := userIdentity()
		identity.GIDs = map[string]domain.GID{"user": primary}

		set, err := newTestResolver(b.String(), identity, 0).CompatibleGIDs(context.Background(), "user")
		require.NoError(t, err)

		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			require.NotEmpty(t, set.GIDs)
			assert.Equal(t, primary, set.GIDs[len(set.GIDs)-1], "primary GID is last")
			assert.NotContains(t, set.Supplementary(), primary, "primary GID appears once")
			assert.Len(t, set.Memberships, len(set.GIDs)-1)

			for i, m := range set.Memberships {
				assert.Equal(t, m.GID, set.GIDs[i], "memberships follow file order")
			}
		})
	}
}
