// Package pathmatch evaluates glob-style include and exclude pattern sets
// against file names and relative paths.
//
// Two match modes exist and the asymmetry is deliberate: base-name patterns
// are always evaluated as shell globs, while path patterns fall back to
// substring containment when the pattern carries no glob metacharacters and
// no separator. "vendor" therefore excludes every path containing "vendor",
// but as a name pattern only a file literally named "vendor".
package pathmatch

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob metacharacters recognized by doublestar
const globChars = "*?["

// Match reports whether candidate matches pattern as a shell glob.
// "*" and "**/*" match everything. Matching is case-sensitive on every
// platform; an invalid pattern matches nothing.
func Match(candidate, pattern string) bool {
	if pattern == "*" || pattern == "**/*" {
		return true
	}

	matched, err := doublestar.Match(pattern, candidate)
	if err != nil {
		return false
	}
	return matched
}

// MatchName reports whether the base name matches pattern as a glob
func MatchName(name, pattern string) bool {
	return Match(name, pattern)
}

// MatchPath reports whether a relative path matches pattern. Patterns with
// glob metacharacters or a literal dot are evaluated as globs; a bare word
// without separators matches by substring containment.
func MatchPath(path, pattern string) bool {
	if isPlainWord(pattern) {
		return strings.Contains(path, pattern)
	}
	return Match(path, pattern)
}

// AnyName reports whether name matches at least one pattern. An empty
// pattern set matches everything (open default for include sets).
func AnyName(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if MatchName(name, p) {
			return true
		}
	}
	return false
}

// AnyPath reports whether path matches at least one pattern, with the
// glob-or-substring rule of MatchPath. An empty set matches everything.
func AnyPath(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if MatchPath(path, p) {
			return true
		}
	}
	return false
}

// ExcludedName reports whether name matches any exclude pattern. An empty
// set excludes nothing.
func ExcludedName(name string, patterns []string) bool {
	for _, p := range patterns {
		if MatchName(name, p) {
			return true
		}
	}
	return false
}

// ExcludedPath reports whether path matches any exclude pattern. An empty
// set excludes nothing.
func ExcludedPath(path string, patterns []string) bool {
	for _, p := range patterns {
		if MatchPath(path, p) {
			return true
		}
	}
	return false
}

// isPlainWord reports whether pattern has no glob metacharacters, no
// separator, and no dot, i.e. it should match by substring containment
// when applied to a path.
func isPlainWord(pattern string) bool {
	return !strings.ContainsAny(pattern, globChars) &&
		!strings.ContainsAny(pattern, "/\\") &&
		!strings.Contains(pattern, ".")
}
