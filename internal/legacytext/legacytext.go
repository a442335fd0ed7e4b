// Package legacytext decodes the fixed-width BIG5 text slots embedded in game records.
package legacytext

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// Display fallbacks returned instead of decoded text. They are terminal values, not errors.
const (
	// Empty is returned for a zero-length slot or a slot holding only NUL padding.
	Empty = "Empty"
	// Wrong is returned when the bytes are not valid BIG5.
	Wrong = "Wrong"
	// Error is returned for any other decoding failure.
	Error = "Error"
)

// fullWidthSpace pads names in the legacy format
const fullWidthSpace = '　'

// errInvalidSequence marks a byte run the BIG5 decoder could only replace
var errInvalidSequence = errors.New("invalid BIG5 sequence")

// Decode converts a fixed-width BIG5 byte run into a Go string.
func Decode(b []byte) (out string) {
	if len(b) == 0 {
		return Empty
	}

	defer func() {
		if r := recover(); r != nil {
			out = Error
		}
	}()

	trimmed := bytes.TrimRight(b, "\x00")
	if len(trimmed) == 0 {
		return Empty
	}

	s, err := decodeBig5(trimmed)
	if err != nil {
		if isConversionError(err) {
			return Wrong
		}
		return Error
	}

	return strings.TrimRightFunc(s, func(r rune) bool {
		return r == 0 || r == fullWidthSpace
	})
}

func decodeBig5(b []byte) (string, error) {
	decoded, _, err := transform.Bytes(traditionalchinese.Big5.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	// the decoder substitutes U+FFFD for bytes it cannot map instead of failing
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", errInvalidSequence
	}
	return string(decoded), nil
}

func isConversionError(err error) bool {
	return errors.Is(err, errInvalidSequence) ||
		errors.Is(err, transform.ErrShortSrc) ||
		errors.Is(err, transform.ErrEndOfSpan)
}
