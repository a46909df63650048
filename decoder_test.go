package huffman

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDecode_RoundTrip(t *testing.T) {
	tree := makeTestTree(t, corpusText)

	type testRow struct {
		name   string
		text   string
		expect string
	}

	testData := [...]testRow{
		{name: "corpus", text: corpusText, expect: corpusText},
		{name: "empty", text: "", expect: ""},
		{name: "blank-lines", text: "\n\n\n", expect: "\n\n\n"},
		{name: "unterminated", text: "the lazy dog", expect: "the lazy dog\n"},
		{name: "crlf", text: "fox\r\ndog\r\n", expect: "fox\r\ndog\r\n"},
		{name: "unicode", text: "☃ ü ☃\n", expect: "☃ ü ☃\n"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			encoded, err := tree.EncodeText(row.text)
			if err != nil {
				t.Fatalf("EncodeText failed: %v", err)
			}
			decoded, err := tree.DecodeText(encoded)
			if err != nil {
				t.Fatalf("DecodeText failed: %v", err)
			}
			if decoded != row.expect {
				t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", row.expect, decoded)
			}
		})
	}
}

func TestDecode_RandomLines(t *testing.T) {
	tree := makeTestTree(t, corpusText)
	alphabet := []rune("The quick brown fox jumps over the lazy dog☃ü\t\r")
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		n := rng.Intn(40)
		line := make([]Symbol, n)
		for j := range line {
			line[j] = Symbol(alphabet[rng.Intn(len(alphabet))])
		}
		line = append(line, EndOfLine)

		encoded, err := tree.Encode(line)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		decoded, err := tree.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if SymbolsToText(decoded) != SymbolsToText(line) {
			t.Fatalf("round trip mismatch:\n\texpect: %q\n\tactual: %q", SymbolsToText(line), SymbolsToText(decoded))
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	tree := makeTestTree(t, "aab")

	type testRow struct {
		bits   string
		offset int
	}

	testData := [...]testRow{
		{bits: "1", offset: 0},
		{bits: "01", offset: 1},
		{bits: "00101", offset: 4},
	}
	for _, row := range testData {
		t.Run(row.bits, func(t *testing.T) {
			_, err := tree.Decode(MustParseBits(row.bits))
			if !errors.Is(err, ErrMalformedStream) {
				t.Fatalf("expected ErrMalformedStream, got %v", err)
			}
			var mErr *MalformedStreamError
			if !errors.As(err, &mErr) {
				t.Fatalf("expected *MalformedStreamError, got %T", err)
			}
			if mErr.Offset != row.offset {
				t.Errorf("wrong offset:\n\texpect: %d\n\tactual: %d", row.offset, mErr.Offset)
			}
		})
	}
}

func TestDecode_Phantom(t *testing.T) {
	tree, err := Build(FrequencyTable{'x': 1})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := tree.Decode(MustParseBits("001")); !errors.Is(err, ErrMalformedStream) {
		t.Errorf("expected ErrMalformedStream, got %v", err)
	}
}

func TestDecode_Uninitialized(t *testing.T) {
	var empty Tree
	if _, err := empty.Decode(MustParseBits("0")); !errors.Is(err, ErrUninitialized) {
		t.Errorf("expected ErrUninitialized, got %v", err)
	}
	var nilTree *Tree
	if _, err := nilTree.DecodeText(Bits{}); !errors.Is(err, ErrUninitialized) {
		t.Errorf("expected ErrUninitialized, got %v", err)
	}
}
