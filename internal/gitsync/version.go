// SPDX-License-Identifier: MPL-2.0

package gitsync

import (
	"strconv"
	"strings"
)

// versionLess orders version tags like v0.9.5 < v0.10.0 by comparing dotted
// numeric segments; non-numeric segments (rc suffixes and the like) fall back
// to lexical order at the first difference.
func versionLess(a, b string) bool {
	as := splitVersion(a)
	bs := splitVersion(b)

	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aNum := parseSegment(as[i])
		bn, bNum := parseSegment(bs[i])
		switch {
		case aNum && bNum:
			if an != bn {
				return an < bn
			}
		default:
			if as[i] != bs[i] {
				return as[i] < bs[i]
			}
		}
	}
	return len(as) < len(bs)
}

func splitVersion(v string) []string {
	v = strings.TrimPrefix(v, "v")
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-'
	})
}

func parseSegment(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
