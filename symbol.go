package huffman

import (
	"strconv"
	"unicode"
)

// Symbol represents a symbol in the text alphabet: either a Unicode code
// point or the EndOfLine sentinel.  Negative symbols are not valid.
type Symbol int32

// EndOfLine is the synthetic symbol that marks a line boundary.  It lies
// just past the last Unicode code point, so no decoded character can ever
// be equal to it.
const EndOfLine = Symbol(unicode.MaxRune + 1)

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = EndOfLine

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.  Phantom leaves carry it too.
const InvalidSymbol = Symbol(-1)

// IsValid returns true iff s is a code point or EndOfLine.
func (s Symbol) IsValid() bool {
	return s >= 0 && s <= MaxSymbol
}

// String returns a human-readable representation of this Symbol.
func (s Symbol) String() string {
	switch {
	case s == EndOfLine:
		return "EOL"
	case s == InvalidSymbol:
		return "<phantom>"
	case !s.IsValid():
		return "Symbol(" + strconv.FormatInt(int64(s), 10) + ")"
	default:
		return strconv.QuoteRune(rune(s))
	}
}

// LineSymbols converts one line of text (without its terminator) into
// Symbols.
func LineSymbols(line string) []Symbol {
	out := make([]Symbol, 0, len(line))
	for _, ch := range line {
		out = append(out, Symbol(ch))
	}
	return out
}

// SymbolsToText converts decoded Symbols back into text, turning every
// EndOfLine into "\n".
func SymbolsToText(symbols []Symbol) string {
	buf := make([]rune, len(symbols))
	for i, s := range symbols {
		if s == EndOfLine {
			buf[i] = '\n'
		} else {
			buf[i] = rune(s)
		}
	}
	return string(buf)
}
