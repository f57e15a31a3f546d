package history

import (
	"strings"

	"github.com/google/uuid"
)

const (
	defaultKeyLength = 6
	maxKeyLength     = 32
	keyAttempts      = 64
)

// newKey returns a random key of the given length that taken rejects. If the
// key space of that length looks exhausted the key grows by one character.
func newKey(length int, taken func(string) bool) string {
	for {
		for range keyAttempts {
			key := randomKey(length)
			if taken == nil || !taken(key) {
				return key
			}
		}
		if length < maxKeyLength {
			length++
		}
	}
}

func randomKey(length int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:length]
}
