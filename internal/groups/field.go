// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

// Package groups resolves the GIDs a user is compatible with by scanning a
// group(5) file.
package groups

import "strings"

// Field indices of a group(5) record.
const (
	FieldName = iota
	FieldPassword
	FieldGID
	FieldUserList
)

// fieldSeparator delimits group(5) fields.
const fieldSeparator = ':'

// memberSeparator delimits the user-list field.
const memberSeparator = ','

// recordColons is the exact number of separators in a valid record.
const recordColons = FieldUserList

// ValidRecord reports whether record has exactly four fields.
func ValidRecord(record string) bool {
	return strings.Count(record, ":") == recordColons
}

// Field returns the field at index within record. The returned string is a
// view into record. It reports false when index is outside FieldName..FieldUserList
// or when record has too few separators to contain the field; an empty field
// that is present is returned as "" and true.
func Field(record string, index int) (string, bool) {
	if index < FieldName || index > FieldUserList {
		return "", false
	}

	start := 0

	for range index {
		i := strings.IndexByte(record[start:], fieldSeparator)
		if i < 0 {
			return "", false
		}

		start += i + 1
	}

	rest := record[start:]
	if end := strings.IndexByte(rest, fieldSeparator); end >= 0 {
		return rest[:end], true
	}

	return rest, true
}
