package internal

import (
	"strconv"
	"strings"
)

// SplitPath splits a dotted variable path into its segments.
// Empty segments are kept so callers can reject "a..b" instead of
// silently skipping the gap.
func SplitPath(path string) []string {
	if path == StringValueEmpty {
		return nil
	}
	return strings.Split(path, PathSeparator)
}

// ParseIndex parses a sequence index segment.
// Only unsigned decimal digits are accepted: no sign, no whitespace,
// no base prefix. Leading zeros are allowed ("01" is index 1).
// A segment that overflows int is not an index.
func ParseIndex(segment string) (int, bool) {
	if segment == StringValueEmpty {
		return 0, false
	}
	for i := 0; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(segment, IntBase10, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
