// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package groups_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/janderssonse/skid/internal/domain"
	"github.com/janderssonse/skid/internal/groups"
	"github.com/janderssonse/skid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testGroupFile = "/test/group"

const sampleGroupFile = `root:x:0:
users:x:100:joe,user
nogroup:x:65534:
docker:x:134:user
staff:x:50:username
`

func newTestResolver(content string, identity domain.IdentityResolver, maxRecords int) *groups.Resolver {
	return groups.NewResolver(
		testutil.StaticFiles{testGroupFile: content},
		identity,
		groups.Options{GroupFile: testGroupFile, MaxRecords: maxRecords},
	)
}

func userIdentity() testutil.StaticIdentity {
	return testutil.StaticIdentity{
		Current: "user",
		GIDs:    map[string]domain.GID{"user": 1000, "joe": 100},
	}
}

func TestResolver_EndToEnd(t *testing.T) {
	t.Parallel()

	r := newTestResolver(sampleGroupFile, userIdentity(), 0)

	set, err := r.CompatibleGIDs(context.Background(), "user")
	require.NoError(t, err)

	assert.Equal(t, []domain.GID{100, 134, 1000}, set.GIDs)
	assert.Equal(t, []domain.GID{100, 134, 1000, 0, 0}, set.Terminated(domain.DefaultSentinels))
	assert.Equal(t, domain.GID(1000), set.Primary())
	assert.Equal(t, []domain.Membership{{Group: "users", GID: 100}, {Group: "docker", GID: 134}}, set.Memberships)
}

func TestResolver_PrimaryGIDLastAndUnique(t *testing.T) {
	t.Parallel()

	// joe's primary GID 100 is also listed in the file.
	content := "users:x:100:joe\ndev:x:200:joe\nops:x:300:joe\n"
	r := newTestResolver(content, userIdentity(), 0)

	set, err := r.CompatibleGIDs(context.Background(), "joe")
	require.NoError(t, err)

	assert.Equal(t, []domain.GID{200, 300, 100}, set.GIDs)
	assert.Equal(t, set.Primary(), set.GIDs[len(set.GIDs)-1])
	assert.NotContains(t, set.Supplementary(), set.Primary())
}

func TestResolver_Idempotent(t *testing.T) {
	t.Parallel()

	r := newTestResolver(sampleGroupFile, userIdentity(), 0)

	first, err := r.CompatibleGIDs(context.Background(), "user")
	require.NoError(t, err)

	second, err := r.CompatibleGIDs(context.Background(), "user")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolver_MalformedLineTolerance(t *testing.T) {
	t.Parallel()

	valid := "users:x:100:user\ndocker:x:134:user\n"
	withBad := "users:x:100:user\nbroken:user\ndocker:x:134:user\n"

	logger := &testutil.RecordingLogger{}

	clean := newTestResolver(valid, userIdentity(), 0)
	dirty := groups.NewResolver(
		testutil.StaticFiles{testGroupFile: withBad},
		userIdentity(),
		groups.Options{GroupFile: testGroupFile, Logger: logger},
	)

	want, err := clean.CompatibleGIDs(context.Background(), "user")
	require.NoError(t, err)

	got, err := dirty.CompatibleGIDs(context.Background(), "user")
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.True(t, logger.Contains(testGroupFile+":2"))
}

func TestResolver_NonNumericGIDSkipped(t *testing.T) {
	t.Parallel()

	content := "bad:x:abc:user\ndocker:x:134:user\n"
	r := newTestResolver(content, userIdentity(), 0)

	set, err := r.CompatibleGIDs(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, []domain.GID{134, 1000}, set.GIDs)
}

func TestResolver_SubstringNeverMatches(t *testing.T) {
	t.Parallel()

	content := "staff:x:50:username,superuser\n"
	r := newTestResolver(content, userIdentity(), 0)

	set, err := r.CompatibleGIDs(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, []domain.GID{1000}, set.GIDs)
}

func capacityFile(matches int) string {
	var b strings.Builder
	for i := range matches {
		fmt.Fprintf(&b, "g%d:x:%d:user\n", i, 2000+i)
	}

	return b.String()
}

func TestResolver_CapacityBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		maxRecords int
		matches    int
		wantErr    bool
	}{
		{name: "exactly at maximum", maxRecords: 8, matches: 8, wantErr: false},
		{name: "one over maximum", maxRecords: 8, matches: 9, wantErr: true},
		{name: "default maximum", maxRecords: 0, matches: domain.DefaultMaxRecords, wantErr: false},
		{name: "default maximum plus one", maxRecords: 0, matches: domain.DefaultMaxRecords + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestResolver(capacityFile(tt.matches), userIdentity(), tt.maxRecords)

			set, err := r.CompatibleGIDs(context.Background(), "user")
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, set)
				assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
				assert.ErrorIs(t, err, syscall.ENOBUFS)
				assert.Equal(t, domain.KindCapacityExceeded, domain.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.matches+1, set.Len())
		})
	}
}

func TestResolver_PrimaryNotCountedAgainstCapacity(t *testing.T) {
	t.Parallel()

	content := capacityFile(4) + "primary:x:1000:user\n"
	r := newTestResolver(content, userIdentity(), 4)

	set, err := r.CompatibleGIDs(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, 5, set.Len())
}

func TestResolver_InvalidUsername(t *testing.T) {
	t.Parallel()

	r := newTestResolver(sampleGroupFile, userIdentity(), 0)

	for _, name := range []string{"", "us:er", "us,er", "us\ner"} {
		set, err := r.CompatibleGIDs(context.Background(), name)
		require.Error(t, err, "username %q", name)
		assert.Nil(t, set)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		assert.ErrorIs(t, err, syscall.EINVAL)
	}
}

func TestResolver_IdentityFailure(t *testing.T) {
	t.Parallel()

	identity := &testutil.MockIdentityResolver{}
	identity.On("PrimaryGID", mock.Anything, "ghost").Return(domain.GID(0), domain.ErrUnknownUser)

	files := &testutil.MockFileReader{}

	r := groups.NewResolver(files, identity, groups.Options{GroupFile: testGroupFile})

	set, err := r.CompatibleGIDs(context.Background(), "ghost")
	require.Error(t, err)
	assert.Nil(t, set)
	assert.ErrorIs(t, err, domain.ErrIdentityResolution)
	assert.ErrorIs(t, err, domain.ErrUnknownUser)

	identity.AssertExpectations(t)
	files.AssertNotCalled(t, "ReadFile", mock.Anything)
}

func TestResolver_GroupFileUnavailable(t *testing.T) {
	t.Parallel()

	readErr := errors.New("no such file or directory")

	files := &testutil.MockFileReader{}
	files.On("ReadFile", testGroupFile).Return(nil, readErr)

	r := groups.NewResolver(files, userIdentity(), groups.Options{GroupFile: testGroupFile})

	set, err := r.CompatibleGIDs(context.Background(), "user")
	require.Error(t, err)
	assert.Nil(t, set)
	assert.ErrorIs(t, err, domain.ErrGroupFileUnavailable)
	assert.ErrorIs(t, err, readErr)
	assert.Contains(t, err.Error(), testGroupFile)

	files.AssertExpectations(t)
}

func TestResolver_GroupFileNotRegistered(t *testing.T) {
	t.Parallel()

	r := groups.NewResolver(testutil.StaticFiles{}, userIdentity(), groups.Options{GroupFile: testGroupFile})

	_, err := r.CompatibleGIDs(context.Background(), "user")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGroupFileUnavailable)
	assert.ErrorIs(t, err, testutil.ErrFileNotFound)
}

func TestResolver_NoGroups(t *testing.T) {
	t.Parallel()

	r := newTestResolver("", userIdentity(), 0)

	set, err := r.CompatibleGIDs(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, []domain.GID{1000}, set.GIDs)
	assert.Empty(t, set.Memberships)
}

func TestResolver_CurrentCompatibleGIDs(t *testing.T) {
	t.Parallel()

	r := newTestResolver(sampleGroupFile, userIdentity(), 0)

	set, err := r.CurrentCompatibleGIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user", set.Username)

	noUser := newTestResolver(sampleGroupFile, testutil.StaticIdentity{}, 0)

	_, err = noUser.CurrentCompatibleGIDs(context.Background())
	assert.ErrorIs(t, err, domain.ErrIdentityResolution)
}

func TestResolver_IsCompatible(t *testing.T) {
	t.Parallel()

	r := newTestResolver(sampleGroupFile, userIdentity(), 0)

	ok, err := r.IsCompatible(context.Background(), "user", 134)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsCompatible(context.Background(), "user", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.IsCompatible(context.Background(), "", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestNewResolver_Defaults(t *testing.T) {
	t.Parallel()

	r := groups.NewResolver(testutil.StaticFiles{}, userIdentity(), groups.Options{})
	assert.Equal(t, groups.DefaultGroupFile, r.GroupFile())
}
