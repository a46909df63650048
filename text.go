package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is the text encoding used when none is configured.
const DefaultEncoding = "utf-8"

var (
	errInvalidUTF8   = errors.New("input is not valid UTF-8")
	errNotReversible = errors.New("input is not valid under the configured encoding")
)

// LookupEncoding resolves an encoding label such as "utf-8", "utf-16le" or
// "windows-1252".  The same encoding must be used when counting, when
// compressing and when writing recovered text.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding %q: %w", name, err)
	}
	return enc, nil
}

func isUTF8(enc encoding.Encoding) bool {
	if enc == nil || enc == unicode.UTF8 {
		return true
	}
	name, err := htmlindex.Name(enc)
	return err == nil && name == "utf-8"
}

// DecodeText converts raw file contents into text under enc.  A nil enc
// means UTF-8.  Input that does not survive decoding unchanged (invalid
// UTF-8, lone surrogates, truncated code units) is rejected rather than
// replaced, so that garbage never reaches the frequency table.
func DecodeText(data []byte, enc encoding.Encoding) (string, error) {
	if isUTF8(enc) {
		if !utf8.Valid(data) {
			return "", errInvalidUTF8
		}
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	// Decoders substitute U+FFFD for malformed input, so check that the
	// text encodes back to exactly the bytes we were given.
	back, err := enc.NewEncoder().Bytes(out)
	if err != nil || !bytes.Equal(back, data) {
		return "", errNotReversible
	}
	return string(out), nil
}

// EncodeText converts text into raw bytes under enc.  A nil enc means
// UTF-8.
func EncodeText(text string, enc encoding.Encoding) ([]byte, error) {
	if isUTF8(enc) {
		return []byte(text), nil
	}
	return enc.NewEncoder().Bytes([]byte(text))
}

// SplitLines splits text on "\n", dropping the terminators.  A final
// terminator does not start another line, so "" has zero lines and "a\n"
// and "a" both have one.  "\r" is an ordinary character.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
