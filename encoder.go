package huffman

import (
	"container/heap"
	"math"

	"github.com/chronos-tachyon/assert"
)

// Build constructs the Huffman tree for the given frequencies.  Symbols
// with a count of zero are ignored.  Returns ErrEmptyInput if no symbols
// remain.
//
// Ties in weight are broken by sequence number: leaves are numbered in
// ascending Symbol order, and every merged node takes the next number
// after that, so the same table always yields the same tree.
//
// A single-symbol alphabet gets a root whose left child is the real leaf
// (code "0") and whose right child is a weight-0 phantom leaf with no code.
func Build(freq FrequencyTable) (*Tree, error) {
	symbols := freq.Symbols()
	if len(symbols) == 0 {
		return nil, ErrEmptyInput
	}

	nodes := make([]nodeAndSeq, 0, len(symbols))
	for _, symbol := range symbols {
		assert.Assertf(symbol.IsValid(), "symbol %d is outside [0, %d]", int32(symbol), int32(MaxSymbol))
		leaf := &Node{Weight: freq[symbol], Symbol: symbol}
		nodes = append(nodes, nodeAndSeq{leaf, uint64(len(nodes))})
	}

	var root *Node
	if len(nodes) == 1 {
		only := nodes[0].node
		root = &Node{
			Weight: only.Weight,
			Symbol: InvalidSymbol,
			Left:   only,
			Right:  &Node{Weight: 0, Symbol: InvalidSymbol},
		}
	} else {
		root = combine(nodes)
	}

	t := &Tree{root: root}
	if err := t.deriveCodes(); err != nil {
		return nil, err
	}
	return t, nil
}

// combine repeatedly pops the two lightest nodes from a minheap and pushes
// their parent back, until only the root remains.
func combine(nodes []nodeAndSeq) *Node {
	h := weightHeap{nodes}
	h.Init()

	nextSeq := uint64(len(nodes))
	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndSeq)
		b := heap.Pop(&h).(nodeAndSeq)

		// Compute weight using saturating addition
		weight := a.node.Weight + b.node.Weight
		if weight < a.node.Weight {
			weight = math.MaxUint64
		}

		parent := &Node{Weight: weight, Symbol: InvalidSymbol, Left: a.node, Right: b.node}
		heap.Push(&h, nodeAndSeq{parent, nextSeq})
		nextSeq++
	}

	return heap.Pop(&h).(nodeAndSeq).node
}

// deriveCodes walks the tree depth-first and records the path to every
// real leaf, '0' for each left turn and '1' for each right turn.
//
// The walk uses an explicit stack so that a pathologically deep tree
// cannot exhaust the goroutine stack.  stackItem.x tracks progress:
//   x=0 → We just arrived at stackItem for the first time
//   x=1 → We have already processed the left child
//   x=2 → We have already processed both children
//
func (t *Tree) deriveCodes() error {
	if t.root == nil {
		return ErrUninitialized
	}
	if t.root.IsLeaf() {
		return malformed(-1, "root of Huffman tree is a leaf")
	}

	type stackItem struct {
		node *Node
		path Bits
		x    byte
	}

	codes := make(map[Symbol]Bits)
	stack := make([]stackItem, 0, 32)

	processChild := func(child *Node, path Bits, bit byte) error {
		path = path.Clone()
		path.AppendBit(bit)
		switch {
		case !child.IsLeaf():
			assert.Assertf(child.Left != nil && child.Right != nil, "internal node with only one child")
			stack = append(stack, stackItem{node: child, path: path})
		case child.IsPhantom():
			// no code
		default:
			if _, dupe := codes[child.Symbol]; dupe {
				return malformed(-1, "symbol %v appears in more than one leaf", child.Symbol)
			}
			codes[child.Symbol] = path
		}
		return nil
	}

	stack = append(stack, stackItem{node: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		var err error
		switch x {
		case 0:
			err = processChild(top.node.Left, top.path, 0)
		case 1:
			err = processChild(top.node.Right, top.path, 1)
		case 2:
			stack[len(stack)-1] = stackItem{}
			stack = stack[:len(stack)-1]
		}
		if err != nil {
			return err
		}
	}

	if len(codes) == 0 {
		return malformed(-1, "Huffman tree has no symbols")
	}
	t.codes = codes
	return nil
}

// Encode concatenates the codes for each symbol in line.
func (t *Tree) Encode(line []Symbol) (Bits, error) {
	var out Bits
	if err := t.encodeInto(&out, line, 0); err != nil {
		return Bits{}, err
	}
	return out, nil
}

// EncodeText encodes every line of text, each followed by EndOfLine.
func (t *Tree) EncodeText(text string) (Bits, error) {
	if t == nil || len(t.codes) == 0 {
		return Bits{}, ErrUninitialized
	}
	var out Bits
	index := 0
	for _, line := range SplitLines(text) {
		symbols := append(LineSymbols(line), EndOfLine)
		if err := t.encodeInto(&out, symbols, index); err != nil {
			return Bits{}, err
		}
		index += len(symbols)
	}
	return out, nil
}

func (t *Tree) encodeInto(out *Bits, symbols []Symbol, base int) error {
	if t == nil || len(t.codes) == 0 {
		return ErrUninitialized
	}
	for i, symbol := range symbols {
		hc, found := t.codes[symbol]
		if !found {
			return &UnknownSymbolError{Symbol: symbol, Index: base + i}
		}
		out.Append(hc)
	}
	return nil
}

type nodeAndSeq struct {
	node *Node
	seq  uint64
}

type weightHeap struct {
	list []nodeAndSeq
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.node.Weight != b.node.Weight {
		return a.node.Weight < b.node.Weight
	}
	return a.seq < b.seq
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndSeq))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nodeAndSeq{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)
