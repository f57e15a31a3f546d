package history

import (
	"fmt"
	"strings"
)

// HashType selects how a path is written into the URL fragment.
type HashType string

const (
	// HashBang writes "#!/path", the legacy crawlable format.
	HashBang HashType = "hashbang"
	// NoSlash writes "#path".
	NoSlash HashType = "noslash"
	// Slash writes "#/path". It is the default.
	Slash HashType = "slash"
)

// ParseHashType validates s as a hash type. An empty string selects Slash.
func ParseHashType(s string) (HashType, error) {
	switch t := HashType(strings.ToLower(strings.TrimSpace(s))); t {
	case HashBang, NoSlash, Slash:
		return t, nil
	case "":
		return Slash, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedHashType, s)
	}
}

func (t HashType) valid() bool {
	return t == HashBang || t == NoSlash || t == Slash
}

// Encode turns an application path into a fragment (without the '#').
func (t HashType) Encode(path string) string {
	switch t {
	case HashBang:
		if strings.HasPrefix(path, "!") {
			return path
		}
		return "!/" + stripLeadingSlash(path)
	case NoSlash:
		return stripLeadingSlash(path)
	default:
		return addLeadingSlash(path)
	}
}

// Decode turns a fragment (without the '#') back into an application path.
func (t HashType) Decode(fragment string) string {
	switch t {
	case HashBang:
		return strings.TrimPrefix(fragment, "!")
	default:
		return addLeadingSlash(fragment)
	}
}

func (t HashType) String() string {
	return string(t)
}

// StripHash drops the fragment from url.
func StripHash(url string) string {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		return url[:i]
	}
	return url
}
