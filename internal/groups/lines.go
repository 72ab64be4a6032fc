// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

package groups

import (
	"iter"
	"strings"
)

// Lines yields the newline-delimited records of buf without copying. Each
// record is a view into buf with its trailing "\n" (and a "\r" before it)
// removed. Scanning stops at the first NUL byte, which terminates the data.
func Lines(buf string) iter.Seq[string] {
	if i := strings.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}

	return func(yield func(string) bool) {
		for len(buf) > 0 {
			line, rest, _ := strings.Cut(buf, "\n")
			buf = rest

			if !yield(strings.TrimSuffix(line, "\r")) {
				return
			}
		}
	}
}
