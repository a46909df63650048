package huffman

// Decode walks the tree from the root for each bit, left on 0 and right on
// 1, emitting a Symbol whenever a leaf is reached and then starting over at
// the root.
//
// The input must end exactly at the root.  Ending partway down a path, or
// walking into the phantom leaf of a single-symbol tree, yields a
// *MalformedStreamError.
func (t *Tree) Decode(bits Bits) ([]Symbol, error) {
	if t == nil || t.root == nil || len(t.codes) == 0 {
		return nil, ErrUninitialized
	}

	out := make([]Symbol, 0, bits.Len()/2)
	node := t.root
	start := 0
	for i := 0; i < bits.Len(); i++ {
		if bits.Bit(i) == 0 {
			node = node.Left
		} else {
			node = node.Right
		}
		if !node.IsLeaf() {
			continue
		}
		if node.IsPhantom() {
			return nil, malformed(start, "code %q does not name a symbol", bits.slice(start, i+1))
		}
		out = append(out, node.Symbol)
		node = t.root
		start = i + 1
	}

	if node != t.root {
		return nil, malformed(start, "input ends inside code %q", bits.slice(start, bits.Len()))
	}
	return out, nil
}

// DecodeText decodes bits and renders the result as text.  EndOfLine
// symbols become "\n"; the substitution runs once, after the whole input
// has been decoded.
func (t *Tree) DecodeText(bits Bits) (string, error) {
	symbols, err := t.Decode(bits)
	if err != nil {
		return "", err
	}
	return SymbolsToText(symbols), nil
}

func (b Bits) slice(from, to int) string {
	buf := make([]byte, 0, to-from)
	for i := from; i < to; i++ {
		buf = append(buf, '0'+b.Bit(i))
	}
	return string(buf)
}
