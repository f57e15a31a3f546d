package history

import (
	"fmt"
	"log/slog"
)

// ConfirmFunc asks the user whether a blocked transition may proceed and
// reports the answer through resolve, now or later.
type ConfirmFunc func(message string, resolve func(ok bool))

// Option configures a History at construction.
type Option func(*options)

type options struct {
	basename       string
	hashType       HashType
	confirm        ConfirmFunc
	keyLength      int
	logger         *slog.Logger
	decode         Decoder
	initialEntries []string
	initialIndex   int
}

// WithBasename mounts the application below basename. It is normalised to
// a leading slash without a trailing one.
func WithBasename(basename string) Option {
	return func(o *options) {
		o.basename = NormalizeBasename(basename)
	}
}

// WithHashType selects the fragment encoding of a HashHistory.
func WithHashType(t HashType) Option {
	return func(o *options) {
		o.hashType = t
	}
}

// WithConfirm sets the function that resolves BlockMessage and BlockPrompt
// messages. Without one such messages are logged and the transition is
// allowed.
func WithConfirm(fn ConfirmFunc) Option {
	return func(o *options) {
		o.confirm = fn
	}
}

// WithKeyLength sets the length of generated location keys (1 to 32).
func WithKeyLength(n int) Option {
	return func(o *options) {
		o.keyLength = n
	}
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDecoder replaces DecodeURI as the pathname decoder.
func WithDecoder(decode Decoder) Option {
	return func(o *options) {
		o.decode = decode
	}
}

// WithInitialEntries seeds a MemoryHistory with paths.
func WithInitialEntries(paths ...string) Option {
	return func(o *options) {
		o.initialEntries = append([]string(nil), paths...)
	}
}

// WithInitialIndex selects the starting entry of a MemoryHistory. It is
// clamped to the available entries.
func WithInitialIndex(i int) Option {
	return func(o *options) {
		o.initialIndex = i
	}
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		hashType:  Slash,
		keyLength: defaultKeyLength,
		decode:    DecodeURI,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if o.hashType == "" {
		o.hashType = Slash
	}
	if !o.hashType.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedHashType, o.hashType)
	}
	if o.keyLength < 1 || o.keyLength > maxKeyLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyLength, o.keyLength)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.decode == nil {
		o.decode = DecodeURI
	}
	return o, nil
}
