package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Node is a node of a Huffman tree.  A leaf has no children and carries a
// Symbol; an internal node has exactly two children and its Weight is the
// (saturating) sum of theirs.  Each internal node is the sole owner of its
// children.
type Node struct {
	Weight uint64
	Symbol Symbol
	Left   *Node
	Right  *Node
}

// IsLeaf returns true iff this node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// IsPhantom returns true iff this node is the unused sibling synthesized
// for a single-symbol alphabet.
func (n *Node) IsPhantom() bool {
	return n.IsLeaf() && n.Symbol == InvalidSymbol
}

// Tree is a static Huffman code: the tree itself, which doubles as the
// decoding automaton, plus the code table derived from it.
//
// A Tree is immutable once built, so it may be shared by any number of
// concurrent Encode and Decode calls.
type Tree struct {
	root  *Node
	codes map[Symbol]Bits
}

// Root returns the root node.  The caller must not modify the tree.
func (t *Tree) Root() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// NumSymbols returns the number of symbols that have a code.
func (t *Tree) NumSymbols() int {
	if t == nil {
		return 0
	}
	return len(t.codes)
}

// Code returns a copy of the code for symbol, if it has one.
func (t *Tree) Code(symbol Symbol) (Bits, bool) {
	if t == nil {
		return Bits{}, false
	}
	hc, found := t.codes[symbol]
	if !found {
		return Bits{}, false
	}
	return hc.Clone(), true
}

// Codes returns a copy of the code table.
func (t *Tree) Codes() map[Symbol]Bits {
	if t == nil {
		return nil
	}
	out := make(map[Symbol]Bits, len(t.codes))
	for symbol, hc := range t.codes {
		out[symbol] = hc.Clone()
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the Tree's code table
// to the given writer, in ascending Symbol order.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	if root := t.Root(); root != nil {
		fmt.Fprintf(&buf, "\tWeight() = %d\n", root.Weight)
	}
	fmt.Fprintf(&buf, "\tNumSymbols() = %d\n", t.NumSymbols())
	codes := t.Codes()
	symbols := make([]Symbol, 0, len(codes))
	for symbol := range codes {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	for _, symbol := range symbols {
		fmt.Fprintf(&buf, "\tEncode(%v) = %q\n", symbol, codes[symbol].String())
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
