package history

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// HasBasename reports whether path starts with basename, ignoring case, and
// the match ends at a segment boundary.
func HasBasename(path, basename string) bool {
	_, ok := matchBasename(path, basename)
	return ok
}

// matchBasename compares path and basename rune by rune under Unicode case
// folding and returns the number of path bytes the basename covers. Runes
// may differ in encoded length ("ſ" matches "s"); a rune whose folding
// expands to several runes ("ß" to "ss") only matches the same expansion.
func matchBasename(path, basename string) (int, bool) {
	if basename == "" {
		return 0, true
	}
	// A Caser keeps state between calls, so each call gets its own.
	fold := cases.Fold()
	n := 0
	for _, b := range basename {
		if n >= len(path) {
			return 0, false
		}
		p, size := utf8.DecodeRuneInString(path[n:])
		if p != b && fold.String(string(p)) != fold.String(string(b)) {
			return 0, false
		}
		n += size
	}
	if n == len(path) || strings.IndexByte("/?#", path[n]) >= 0 {
		return n, true
	}
	return 0, false
}

// StripBasename removes basename from the front of path. A path without the
// basename is returned unchanged; a path equal to it becomes "/".
func StripBasename(path, basename string) string {
	n, ok := matchBasename(path, basename)
	if basename == "" || !ok {
		return path
	}
	rest := path[n:]
	if rest == "" || rest[0] != '/' {
		rest = "/" + rest
	}
	return rest
}

// AddBasename prefixes path with basename.
func AddBasename(path, basename string) string {
	if basename == "" {
		return path
	}
	return basename + path
}

// NormalizeBasename gives basename a leading slash and drops any trailing
// ones.
func NormalizeBasename(basename string) string {
	if basename == "" {
		return ""
	}
	basename = strings.TrimRight(addLeadingSlash(basename), "/")
	return basename
}

func addLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

func stripLeadingSlash(path string) string {
	return strings.TrimPrefix(path, "/")
}
