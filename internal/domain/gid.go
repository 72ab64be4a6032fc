// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "slices"

// GID is a POSIX group identifier.
type GID uint32

// DefaultMaxRecords is the number of supplementary group matches collected
// before a resolution fails with ErrCapacityExceeded.
const DefaultMaxRecords = 1024

// DefaultSentinels is the number of zero values appended by Terminated in the
// legacy double-terminated layout.
const DefaultSentinels = 2

// Membership is a single group(5) record the user was found in.
type Membership struct {
	Group string `json:"group"`
	GID   GID    `json:"gid"`
}

// CompatibleGIDs is the set of GIDs a user may act as: every supplementary
// group found in the group file, in file order, followed by the primary GID.
type CompatibleGIDs struct {
	Username    string       `json:"username"`
	PrimaryGID  GID          `json:"primary_gid"`
	GIDs        []GID        `json:"gids"`
	Memberships []Membership `json:"memberships"`
}

// NewCompatibleGIDs builds the set from the supplementary memberships and the
// primary GID. Memberships carrying the primary GID are dropped so that the
// primary GID appears exactly once, as the last element.
func NewCompatibleGIDs(username string, primary GID, memberships []Membership) *CompatibleGIDs {
	kept := make([]Membership, 0, len(memberships))
	gids := make([]GID, 0, len(memberships)+1)

	for _, m := range memberships {
		if m.GID == primary {
			continue
		}

		kept = append(kept, m)
		gids = append(gids, m.GID)
	}

	gids = append(gids, primary)

	return &CompatibleGIDs{
		Username:    username,
		PrimaryGID:  primary,
		GIDs:        gids,
		Memberships: kept,
	}
}

// Primary returns the user's primary GID.
func (c *CompatibleGIDs) Primary() GID {
	return c.PrimaryGID
}

// Supplementary returns the GIDs found in the group file, excluding the primary GID.
func (c *CompatibleGIDs) Supplementary() []GID {
	if len(c.GIDs) == 0 {
		return nil
	}

	return slices.Clone(c.GIDs[:len(c.GIDs)-1])
}

// Contains reports whether gid is one of the compatible GIDs.
func (c *CompatibleGIDs) Contains(gid GID) bool {
	return slices.Contains(c.GIDs, gid)
}

// Len returns the number of GIDs, primary included.
func (c *CompatibleGIDs) Len() int {
	return len(c.GIDs)
}

// Terminated returns a copy of the GIDs followed by n zero sentinels, the
// layout consumed by callers expecting a zero-terminated array.
// A negative n is treated as zero.
func (c *CompatibleGIDs) Terminated(n int) []GID {
	n = max(n, 0)

	out := make([]GID, len(c.GIDs), len(c.GIDs)+n)
	copy(out, c.GIDs)

	for range n {
		out = append(out, 0)
	}

	return out
}
