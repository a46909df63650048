package huffman

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/text/encoding"
)

// FrequencyTable maps each Symbol to its number of occurrences.
type FrequencyTable map[Symbol]uint64

// Symbols returns the symbols with a non-zero count, in ascending order.
func (ft FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(ft))
	for symbol, count := range ft {
		if count != 0 {
			out = append(out, symbol)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Total returns the sum of all counts.
func (ft FrequencyTable) Total() uint64 {
	var sum uint64
	for _, count := range ft {
		sum += count
	}
	return sum
}

// Merge adds every count in other to ft.
func (ft FrequencyTable) Merge(other FrequencyTable) {
	for symbol, count := range other {
		ft[symbol] += count
	}
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer.
func (ft FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	for _, symbol := range ft.Symbols() {
		fmt.Fprintf(&buf, "\t%v = %d\n", symbol, ft[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// Counter aggregates symbol frequencies across a corpus.  Every character
// of every line counts once, and every line additionally counts one
// EndOfLine.
type Counter struct {
	table FrequencyTable
	lines uint64
	files int
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{table: make(FrequencyTable)}
}

// AddText counts all lines of text.
func (c *Counter) AddText(text string) {
	c.lines += countText(c.table, text)
}

// CountReader reads all of r, decodes it under enc and counts it.  On
// error, nothing is added to the Counter.
func (c *Counter) CountReader(r io.Reader, enc encoding.Encoding) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &IOError{Op: "read", Err: err}
	}
	return c.countBytes("", data, enc)
}

// CountFile counts the text file at path.  On error, nothing is added to
// the Counter.
func (c *Counter) CountFile(path string, enc encoding.Encoding) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &IOError{Op: "read", Path: path, Err: err}
	}
	return c.countBytes(path, data, enc)
}

func (c *Counter) countBytes(path string, data []byte, enc encoding.Encoding) error {
	text, err := DecodeText(data, enc)
	if err != nil {
		return &IOError{Op: "decode", Path: path, Err: err}
	}
	scratch := make(FrequencyTable)
	lines := countText(scratch, text)
	c.table.Merge(scratch)
	c.lines += lines
	c.files++
	return nil
}

// Table returns a copy of the accumulated frequencies.
func (c *Counter) Table() FrequencyTable {
	out := make(FrequencyTable, len(c.table))
	out.Merge(c.table)
	return out
}

// Lines returns the number of lines counted so far.
func (c *Counter) Lines() uint64 {
	return c.lines
}

// Files returns the number of files successfully counted so far.
func (c *Counter) Files() int {
	return c.files
}

// CountFiles counts every file in paths, stopping at the first failure.
func CountFiles(paths []string, enc encoding.Encoding) (FrequencyTable, error) {
	c := NewCounter()
	for _, path := range paths {
		if err := c.CountFile(path, enc); err != nil {
			return nil, err
		}
	}
	return c.Table(), nil
}

func countText(table FrequencyTable, text string) uint64 {
	lines := SplitLines(text)
	for _, line := range lines {
		for _, ch := range line {
			table[Symbol(ch)]++
		}
		table[EndOfLine]++
	}
	return uint64(len(lines))
}
