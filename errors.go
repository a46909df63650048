package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when building a tree from a frequency
	// table that has no symbol with a non-zero count.
	ErrEmptyInput = errors.New("huffman: empty frequency table")

	// ErrUnknownSymbol is matched by *UnknownSymbolError.
	ErrUnknownSymbol = errors.New("huffman: symbol not in code table")

	// ErrUninitialized is returned when encoding or decoding with a Tree
	// whose code table was never derived.
	ErrUninitialized = errors.New("huffman: code table has not been built")

	// ErrMalformedStream is matched by *MalformedStreamError.
	ErrMalformedStream = errors.New("huffman: malformed stream")
)

// UnknownSymbolError is returned by Encode when a symbol has no code, which
// means it was never seen while counting frequencies.
type UnknownSymbolError struct {
	Symbol Symbol
	Index  int
}

func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf("huffman: symbol %v at index %d not in code table", err.Symbol, err.Index)
}

// Is makes errors.Is(err, ErrUnknownSymbol) work.
func (err *UnknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

// MalformedStreamError describes a packed stream, bitstring or persisted
// tree that cannot be decoded.
type MalformedStreamError struct {
	// Offset is the bit or byte position at which the problem was found,
	// or -1 if not applicable.
	Offset int
	Reason string
}

func (err *MalformedStreamError) Error() string {
	if err.Offset < 0 {
		return "huffman: malformed stream: " + err.Reason
	}
	return fmt.Sprintf("huffman: malformed stream at offset %d: %s", err.Offset, err.Reason)
}

// Is makes errors.Is(err, ErrMalformedStream) work.
func (err *MalformedStreamError) Is(target error) bool {
	return target == ErrMalformedStream
}

func malformed(offset int, format string, args ...interface{}) error {
	return &MalformedStreamError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// IOError wraps a failure to open, read, decode or write a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (err *IOError) Error() string {
	if err.Path == "" {
		return "huffman: " + err.Op + ": " + err.Err.Error()
	}
	return "huffman: " + err.Op + " " + err.Path + ": " + err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *IOError) Unwrap() error {
	return err.Err
}
