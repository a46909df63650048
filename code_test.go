package huffman

import (
	"testing"
)

func TestBits_ParseString(t *testing.T) {
	for _, str := range []string{"", "0", "1", "1010110", "00000001", "0000000100000000011"} {
		t.Run(str, func(t *testing.T) {
			b, err := ParseBits(str)
			if err != nil {
				t.Fatalf("ParseBits failed: %v", err)
			}
			if b.Len() != len(str) {
				t.Errorf("wrong length:\n\texpect: %d\n\tactual: %d", len(str), b.Len())
			}
			if actual := b.String(); actual != str {
				t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", str, actual)
			}
		})
	}

	if _, err := ParseBits("0120"); err == nil {
		t.Errorf("ParseBits(\"0120\") succeeded, expected error")
	}
}

func TestBits_Append(t *testing.T) {
	type testRow struct {
		a, b, expect string
	}

	testData := [...]testRow{
		{a: "", b: "", expect: ""},
		{a: "", b: "101", expect: "101"},
		{a: "11111111", b: "01", expect: "1111111101"},
		{a: "101", b: "11110000111", expect: "10111110000111"},
		{a: "1", b: "", expect: "1"},
	}
	for _, row := range testData {
		t.Run(row.a+"+"+row.b, func(t *testing.T) {
			a := MustParseBits(row.a)
			a.Append(MustParseBits(row.b))
			if actual := a.String(); actual != row.expect {
				t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", row.expect, actual)
			}
			if !a.Equal(MustParseBits(row.expect)) {
				t.Errorf("Equal returned false for %q", row.expect)
			}
		})
	}
}

func TestBits_HasPrefix(t *testing.T) {
	b := MustParseBits("1011001110")
	type testRow struct {
		prefix string
		expect bool
	}

	testData := [...]testRow{
		{prefix: "", expect: true},
		{prefix: "1", expect: true},
		{prefix: "0", expect: false},
		{prefix: "10110011", expect: true},
		{prefix: "101100111", expect: true},
		{prefix: "101100110", expect: false},
		{prefix: "1011001110", expect: true},
		{prefix: "10110011100", expect: false},
	}
	for _, row := range testData {
		t.Run(row.prefix, func(t *testing.T) {
			if actual := b.HasPrefix(MustParseBits(row.prefix)); actual != row.expect {
				t.Errorf("wrong result:\n\texpect: %v\n\tactual: %v", row.expect, actual)
			}
		})
	}
}

func TestBits_Clone(t *testing.T) {
	a := MustParseBits("101")
	b := a.Clone()
	b.AppendBit(1)
	a.AppendBit(0)
	if actual := a.String(); actual != "1010" {
		t.Errorf("original modified through clone: %q", actual)
	}
	if actual := b.String(); actual != "1011" {
		t.Errorf("wrong clone: %q", actual)
	}
}

func TestMakeBits(t *testing.T) {
	b := MakeBits([]byte{0xff, 0xff}, 11)
	if actual := b.String(); actual != "11111111111" {
		t.Errorf("wrong output: %q", actual)
	}
	if !b.Equal(MustParseBits("11111111111")) {
		t.Errorf("storage beyond Len() is not zero: %#v", b.Bytes())
	}
}
