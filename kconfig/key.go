package kconfig

import (
	"strings"
	"unicode"
)

// NormalizeKey returns the option identifier that follows marker in line.
//
// The identifier ends at the first whitespace or "=" after the marker and is
// upper-cased. The marker itself is never part of the result. When marker
// does not occur in line the result is empty; callers should only pass lines
// known to contain the marker.
//
//	NormalizeKey("# CONFIG_FOO is not set", "CONFIG_") // "FOO"
//	NormalizeKey("CONFIG_BAR=y", "CONFIG_")            // "BAR"
func NormalizeKey(line, marker string) string {
	idx := strings.Index(line, marker)
	if idx < 0 || marker == "" {
		return ""
	}

	rest := line[idx+len(marker):]

	end := strings.IndexFunc(rest, func(r rune) bool {
		return r == '=' || unicode.IsSpace(r)
	})
	if end >= 0 {
		rest = rest[:end]
	}

	return strings.ToUpper(strings.TrimSpace(rest))
}

// normalizeName upper-cases a bare identifier, such as a declaration file
// name, so that it can be joined against marker-derived keys.
func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
