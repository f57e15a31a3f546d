package history

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by constructors and navigation methods.
var (
	// ErrMalformedEscape indicates a pathname with an invalid percent-escape
	// or an escape sequence that is not valid UTF-8.
	ErrMalformedEscape = errors.New("malformed percent-escape")

	// ErrUnsupportedHashType is returned for a hash type other than
	// hashbang, noslash or slash.
	ErrUnsupportedHashType = errors.New("unsupported hash type")

	// ErrInvalidKeyLength is returned when the key length is outside 1..32.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrTransitionPending is returned when a navigation is requested while
	// the hook is still deciding on a previous one.
	ErrTransitionPending = errors.New("transition pending")

	// ErrTraversalUnsupported is returned when the adapter cannot traverse
	// its entries without a reload, which makes denied POPs irreversible.
	ErrTraversalUnsupported = errors.New("history traversal unsupported")

	// ErrNilAdapter is returned when a browser variant is built without
	// its capability.
	ErrNilAdapter = errors.New("nil adapter")
)

// DecodeError reports a pathname that could not be percent-decoded.
type DecodeError struct {
	Pathname string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("history: pathname %q could not be decoded: %v", e.Pathname, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is, or wraps, a *DecodeError.
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}
