// Package pathutil provides helpers for slash-separated archive paths.
package pathutil

import "strings"

// HasSegment reports whether the slash-separated path contains the given
// path segment.
func HasSegment(path, segment string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == segment {
			return true
		}
	}
	return false
}

// UnderAny reports whether the slash-separated path equals one of the
// given prefixes or lies beneath one of them.
func UnderAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		prefix = strings.TrimSuffix(prefix, "/")
		if prefix == "" {
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
