// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package groups

import (
	"strconv"

	"github.com/janderssonse/skid/internal/domain"
	"github.com/janderssonse/skid/internal/stringutil"
)

// MatchUser reports whether username is listed in the user-list field of
// record and, if so, returns the record's GID. Empty input, a record with the
// wrong number of fields and a GID that is not a base-10 uint32 all report no
// match. The GID is only meaningful when the second result is true.
func MatchUser(username, record string) (domain.GID, bool) {
	if username == "" || record == "" || !ValidRecord(record) {
		return 0, false
	}

	members, ok := Field(record, FieldUserList)
	if !ok || !stringutil.ContainsToken(members, username, memberSeparator) {
		return 0, false
	}

	return ParseGID(record)
}

// ParseGID extracts and parses the GID field of record.
func ParseGID(record string) (domain.GID, bool) {
	raw, ok := Field(record, FieldGID)
	if !ok || raw == "" {
		return 0, false
	}

	gid, err := strconv.ParseUint(raw, 10 /* base */, 32 /* bits */)
	if err != nil {
		return 0, false
	}

	return domain.GID(gid), true
}
