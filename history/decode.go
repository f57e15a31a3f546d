package history

import (
	"strings"
	"unicode/utf8"
)

// Decoder turns a raw, possibly percent-encoded pathname into its canonical
// form.
type Decoder func(pathname string) (string, error)

// Escapes of these characters survive decoding. Reserved characters change
// the meaning of a path when decoded, and keeping %25 encoded makes decoding
// idempotent.
const keepEncoded = ";/?:@&=+$,#%"

// DecodeURI decodes percent-escapes in s the way a browser decodes a URI:
// unicode and unreserved characters are decoded, escapes of reserved
// characters are kept verbatim. A malformed escape or an escape sequence that
// is not valid UTF-8 yields ErrMalformedEscape.
func DecodeURI(s string) (string, error) {
	if strings.IndexByte(s, '%') < 0 {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '%' {
			sb.WriteByte(s[i])
			i++
			continue
		}

		c, ok := unescapeAt(s, i)
		if !ok {
			return "", ErrMalformedEscape
		}

		if c < utf8.RuneSelf {
			if strings.IndexByte(keepEncoded, c) >= 0 {
				sb.WriteString(s[i : i+3])
			} else {
				sb.WriteByte(c)
			}
			i += 3
			continue
		}

		n := sequenceLen(c)
		if n == 0 {
			return "", ErrMalformedEscape
		}
		buf := make([]byte, 1, n)
		buf[0] = c
		j := i + 3
		for k := 1; k < n; k++ {
			cont, ok := unescapeAt(s, j)
			if !ok || cont&0xC0 != 0x80 {
				return "", ErrMalformedEscape
			}
			buf = append(buf, cont)
			j += 3
		}
		if r, size := utf8.DecodeRune(buf); r == utf8.RuneError || size != n {
			return "", ErrMalformedEscape
		}
		sb.Write(buf)
		i = j
	}

	return sb.String(), nil
}

// unescapeAt decodes the %XX escape starting at s[i].
func unescapeAt(s string, i int) (byte, bool) {
	if i+2 >= len(s) || s[i] != '%' {
		return 0, false
	}
	hi, ok1 := unhex(s[i+1])
	lo, ok2 := unhex(s[i+2])
	if !ok1 || !ok2 {
		return 0, false
	}
	return hi<<4 | lo, true
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// sequenceLen returns the UTF-8 sequence length announced by a lead byte,
// or 0 if c cannot start a sequence.
func sequenceLen(c byte) int {
	switch {
	case c >= 0xC2 && c <= 0xDF:
		return 2
	case c >= 0xE0 && c <= 0xEF:
		return 3
	case c >= 0xF0 && c <= 0xF4:
		return 4
	}
	return 0
}
