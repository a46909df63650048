package huffman

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func makeTestTree(t *testing.T, text string) *Tree {
	t.Helper()
	c := NewCounter()
	c.AddText(text)
	tree, err := Build(c.Table())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return tree
}

// checkTree verifies the structural invariants every tree must satisfy.
func checkTree(t *testing.T, tree *Tree) {
	t.Helper()

	var walk func(n *Node) uint64
	walk = func(n *Node) uint64 {
		if n.IsLeaf() {
			return n.Weight
		}
		sum := walk(n.Left) + walk(n.Right)
		if n.Weight != sum {
			t.Errorf("internal node weight %d != sum of children %d", n.Weight, sum)
		}
		return n.Weight
	}
	walk(tree.Root())

	codes := tree.Codes()
	for a, ca := range codes {
		if ca.Len() == 0 {
			t.Errorf("symbol %v has an empty code", a)
		}
		for b, cb := range codes {
			if a != b && cb.HasPrefix(ca) {
				t.Errorf("code %v for %v is a prefix of code %v for %v", ca, a, cb, b)
			}
		}
	}
}
