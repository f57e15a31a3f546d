package history

import "strings"

// ParsePath splits raw into pathname, search and hash and decodes the
// pathname with DecodeURI. The pathname is empty when raw starts with '?' or
// '#'; CreateLocation fills it in from the current location.
func ParsePath(raw string) (Location, error) {
	return parsePath(raw, DecodeURI)
}

func parsePath(raw string, decode Decoder) (Location, error) {
	loc := splitPath(raw)
	pathname, err := decodePathname(loc.Pathname, decode)
	if err != nil {
		return Location{}, err
	}
	loc.Pathname = pathname
	return loc, nil
}

func splitPath(raw string) Location {
	var loc Location
	pathname := raw
	if pathname == "" {
		pathname = "/"
	}
	if i := strings.IndexByte(pathname, '#'); i >= 0 {
		loc.Hash = pathname[i:]
		pathname = pathname[:i]
	}
	if i := strings.IndexByte(pathname, '?'); i >= 0 {
		loc.Search = pathname[i:]
		pathname = pathname[:i]
	}
	if loc.Search == "?" {
		loc.Search = ""
	}
	if loc.Hash == "#" {
		loc.Hash = ""
	}
	loc.Pathname = pathname
	return loc
}

func decodePathname(pathname string, decode Decoder) (string, error) {
	if decode == nil {
		return pathname, nil
	}
	decoded, err := decode(pathname)
	if err != nil {
		return "", &DecodeError{Pathname: pathname, Err: err}
	}
	return decoded, nil
}

// CreatePath renders a location as a single path string. Empty parts are
// omitted and a search or hash lacking its sigil gets one.
func CreatePath(loc Location) string {
	path := loc.Pathname
	if path == "" {
		path = "/"
	}
	if s := loc.Search; s != "" && s != "?" {
		if s[0] != '?' {
			path += "?"
		}
		path += s
	}
	if h := loc.Hash; h != "" && h != "#" {
		if h[0] != '#' {
			path += "#"
		}
		path += h
	}
	return path
}

// CreateLocation builds a location from a path string. An empty pathname
// takes currentPathname, a relative one is resolved against it.
func CreateLocation(path string, state any, key, currentPathname string) (Location, error) {
	return newLocation(path, state, key, currentPathname, DecodeURI)
}

// CreateLocationFrom builds a location from a partial one. The partial
// location's own State wins over state; its Key is discarded in favour of
// key.
func CreateLocationFrom(partial Location, state any, key, currentPathname string) (Location, error) {
	return newLocationFrom(partial, state, key, currentPathname, DecodeURI)
}

func newLocation(path string, state any, key, current string, decode Decoder) (Location, error) {
	loc, err := parsePath(path, decode)
	if err != nil {
		return Location{}, err
	}
	loc.State = state
	return completeLocation(loc, key, current), nil
}

func newLocationFrom(partial Location, state any, key, current string, decode Decoder) (Location, error) {
	loc := Location{
		Pathname: partial.Pathname,
		Search:   withSigil(partial.Search, '?'),
		Hash:     withSigil(partial.Hash, '#'),
		State:    partial.State,
	}
	if loc.State == nil {
		loc.State = state
	}
	pathname, err := decodePathname(loc.Pathname, decode)
	if err != nil {
		return Location{}, err
	}
	loc.Pathname = pathname
	return completeLocation(loc, key, current), nil
}

func completeLocation(loc Location, key, current string) Location {
	loc.Key = key
	if current == "" {
		current = "/"
	}
	switch {
	case loc.Pathname == "":
		loc.Pathname = current
	case loc.Pathname[0] != '/':
		loc.Pathname = ResolvePathname(loc.Pathname, current)
	}
	return loc
}

func withSigil(part string, sigil byte) string {
	if part == "" || part == string(sigil) {
		return ""
	}
	if part[0] != sigil {
		return string(sigil) + part
	}
	return part
}

// ResolvePathname resolves to against from the way a browser resolves a
// relative link: the last segment of from is replaced and "." and ".."
// segments are collapsed.
func ResolvePathname(to, from string) string {
	var toParts, fromParts []string
	if to != "" {
		toParts = strings.Split(to, "/")
	}
	if from != "" {
		fromParts = strings.Split(from, "/")
	}

	toAbs := strings.HasPrefix(to, "/")
	mustEndAbs := toAbs || strings.HasPrefix(from, "/")

	switch {
	case toAbs:
		fromParts = toParts
	case len(toParts) > 0:
		if len(fromParts) > 0 {
			fromParts = fromParts[:len(fromParts)-1]
		}
		fromParts = append(fromParts, toParts...)
	}

	if len(fromParts) == 0 {
		return "/"
	}

	last := fromParts[len(fromParts)-1]
	trailingSlash := last == "." || last == ".." || last == ""

	kept := make([]string, 0, len(fromParts))
	up := 0
	for i := len(fromParts) - 1; i >= 0; i-- {
		switch part := fromParts[i]; {
		case part == ".":
		case part == "..":
			up++
		case up > 0:
			up--
		default:
			kept = append(kept, part)
		}
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}

	if !mustEndAbs {
		for ; up > 0; up-- {
			kept = append([]string{".."}, kept...)
		}
	}
	if mustEndAbs && (len(kept) == 0 || kept[0] != "") {
		kept = append([]string{""}, kept...)
	}

	result := strings.Join(kept, "/")
	if trailingSlash && !strings.HasSuffix(result, "/") {
		result += "/"
	}
	return result
}
