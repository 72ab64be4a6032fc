// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

// Package stringutil provides string utility functions for skid.
package stringutil

import "strings"

// ContainsToken reports whether token occurs in list as a whole element
// delimited by sep. An occurrence only counts when it starts the list or
// follows sep, and ends the list or is followed by sep or a newline, so "phil"
// is not found in "phillip" or "jphil". An empty token never matches.
func ContainsToken(list, token string, sep byte) bool {
	if token == "" {
		return false
	}

	for offset := 0; offset < len(list); {
		idx := strings.Index(list[offset:], token)
		if idx < 0 {
			return false
		}

		start := offset + idx
		end := start + len(token)

		if leftBounded(list, start, sep) && rightBounded(list, end, sep) {
			return true
		}

		offset = start + 1
	}

	return false
}

// ContainsAny checks if text contains any of the provided characters.
func ContainsAny(text string, chars ...byte) bool {
	for _, c := range chars {
		if strings.IndexByte(text, c) >= 0 {
			return true
		}
	}

	return false
}

func leftBounded(s string, start int, sep byte) bool {
	return start == 0 || s[start-1] == sep
}

func rightBounded(s string, end int, sep byte) bool {
	return end == len(s) || s[end] == sep || s[end] == '\n'
}
