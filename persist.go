package huffman

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	bitstream "github.com/dgryski/go-bitstream"
)

// Persisted tree format, version 1:
//
//     "THUF"                    magic
//     0x01                      format version
//     body                      pre-order node encoding, MSB-first bits
//     xxhash64(all of above)    8 bytes, big-endian
//
// Each node in the body starts with a tag bit.  Tag 0 is an internal node
// and is followed by its left subtree and then its right subtree.  Tag 1 is
// a leaf and is followed by a 21-bit symbol (all ones for the phantom leaf)
// and a 64-bit weight.  The body is zero-filled to a byte boundary.
const (
	treeMagic         = "THUF"
	treeFormatVersion = 1

	symbolFieldBits = 21
	weightFieldBits = 64
	phantomField    = 1<<symbolFieldBits - 1
	leafBits        = 1 + symbolFieldBits + weightFieldBits

	// MaxTreeDepth bounds the depth of a tree accepted by UnmarshalBinary.
	MaxTreeDepth = 4096

	headerLen   = len(treeMagic) + 1
	checksumLen = 8
)

// MarshalBinary serializes the tree in the versioned persisted format.
func (t *Tree) MarshalBinary() ([]byte, error) {
	if t == nil || t.root == nil {
		return nil, ErrUninitialized
	}

	var buf bytes.Buffer
	buf.WriteString(treeMagic)
	buf.WriteByte(treeFormatVersion)

	bw := bitstream.NewWriter(&buf)
	stack := []*Node{t.root}
	for len(stack) != 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !node.IsLeaf() {
			if err := bw.WriteBit(bitstream.Zero); err != nil {
				return nil, err
			}
			stack = append(stack, node.Right, node.Left)
			continue
		}

		field := uint64(phantomField)
		if !node.IsPhantom() {
			field = uint64(node.Symbol)
		}
		if err := bw.WriteBit(bitstream.One); err != nil {
			return nil, err
		}
		if err := bw.WriteBits(field, symbolFieldBits); err != nil {
			return nil, err
		}
		if err := bw.WriteBits(node.Weight, weightFieldBits); err != nil {
			return nil, err
		}
	}
	if err := bw.Flush(bitstream.Zero); err != nil {
		return nil, err
	}

	var sum [checksumLen]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(buf.Bytes()))
	buf.Write(sum[:])
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces t with the tree serialized in data and derives
// its code table.  Corrupt or truncated input yields a
// *MalformedStreamError.
func (t *Tree) UnmarshalBinary(data []byte) error {
	if len(data) < headerLen+checksumLen {
		return malformed(0, "persisted tree is truncated (%d bytes)", len(data))
	}
	if string(data[:len(treeMagic)]) != treeMagic {
		return malformed(0, "bad magic %q", data[:len(treeMagic)])
	}
	if version := data[len(treeMagic)]; version != treeFormatVersion {
		return malformed(len(treeMagic), "unsupported tree format version %d", version)
	}

	split := len(data) - checksumLen
	expect := binary.BigEndian.Uint64(data[split:])
	if actual := xxhash.Sum64(data[:split]); actual != expect {
		return malformed(split, "checksum mismatch: expected %016x, got %016x", expect, actual)
	}

	body := data[headerLen:split]
	p := treeParser{br: bitstream.NewReader(bytes.NewReader(body))}
	root, err := p.parse(0)
	if err != nil {
		return err
	}

	if expectLen := (p.consumed + 7) / 8; expectLen != len(body) {
		return malformed(headerLen+expectLen, "%d bytes of trailing data after tree", len(body)-expectLen)
	}
	if fill := 8*len(body) - p.consumed; fill > 0 {
		bits, err := p.br.ReadBits(fill)
		if err != nil || bits != 0 {
			return malformed(split-1, "fill bits are not zero")
		}
	}

	loaded := Tree{root: root}
	if err := loaded.deriveCodes(); err != nil {
		return err
	}
	*t = loaded
	return nil
}

// WriteTo writes the persisted form of the tree to w.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	data, err := t.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadTree reads a whole persisted tree from r.
func ReadTree(r io.Reader) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	t := new(Tree)
	if err := t.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return t, nil
}

type treeParser struct {
	br       *bitstream.BitReader
	consumed int
}

func (p *treeParser) parse(depth int) (*Node, error) {
	if depth > MaxTreeDepth {
		return nil, malformed(headerLen+p.consumed/8, "tree deeper than %d", MaxTreeDepth)
	}

	tag, err := p.br.ReadBit()
	if err != nil {
		return nil, p.truncated()
	}
	p.consumed++

	if tag == bitstream.One {
		field, err := p.br.ReadBits(symbolFieldBits)
		if err != nil {
			return nil, p.truncated()
		}
		weight, err := p.br.ReadBits(weightFieldBits)
		if err != nil {
			return nil, p.truncated()
		}
		p.consumed += leafBits - 1

		symbol := InvalidSymbol
		if field != phantomField {
			symbol = Symbol(field)
			if !symbol.IsValid() {
				return nil, malformed(headerLen+p.consumed/8, "invalid symbol %d in leaf", field)
			}
		}
		return &Node{Weight: weight, Symbol: symbol}, nil
	}

	left, err := p.parse(depth + 1)
	if err != nil {
		return nil, err
	}
	right, err := p.parse(depth + 1)
	if err != nil {
		return nil, err
	}

	weight := left.Weight + right.Weight
	if weight < left.Weight {
		weight = math.MaxUint64
	}
	return &Node{Weight: weight, Symbol: InvalidSymbol, Left: left, Right: right}, nil
}

func (p *treeParser) truncated() error {
	return malformed(headerLen+p.consumed/8, "persisted tree body is truncated")
}

var (
	_ encoding.BinaryMarshaler   = (*Tree)(nil)
	_ encoding.BinaryUnmarshaler = (*Tree)(nil)
	_ io.WriterTo                = (*Tree)(nil)
)
