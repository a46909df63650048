package huffman

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestCounter_AddText(t *testing.T) {
	type testRow struct {
		name   string
		text   string
		lines  uint64
		expect FrequencyTable
	}

	testData := [...]testRow{
		{name: "empty", text: "", lines: 0, expect: FrequencyTable{}},
		{name: "aab", text: "aab", lines: 1, expect: FrequencyTable{'a': 2, 'b': 1, EndOfLine: 1}},
		{name: "aab-terminated", text: "aab\n", lines: 1, expect: FrequencyTable{'a': 2, 'b': 1, EndOfLine: 1}},
		{name: "blank-lines", text: "ab\n\ncd\n", lines: 3, expect: FrequencyTable{'a': 1, 'b': 1, 'c': 1, 'd': 1, EndOfLine: 3}},
		{name: "unicode", text: "αβα\n", lines: 1, expect: FrequencyTable{'α': 2, 'β': 1, EndOfLine: 1}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			c := NewCounter()
			c.AddText(row.text)
			if actual := c.Table(); !reflect.DeepEqual(row.expect, actual) {
				t.Errorf("wrong table:\n\texpect: %v\n\tactual: %v", row.expect, actual)
			}
			if actual := c.Lines(); actual != row.lines {
				t.Errorf("wrong line count:\n\texpect: %d\n\tactual: %d", row.lines, actual)
			}
		})
	}
}

func TestCounter_EndOfLineCountsLines(t *testing.T) {
	c := NewCounter()
	c.AddText("one\ntwo\n")
	c.AddText("three")
	table := c.Table()
	if table[EndOfLine] != 3 || c.Lines() != 3 {
		t.Errorf("expected 3 lines and 3 EndOfLine, got %d and %d", c.Lines(), table[EndOfLine])
	}
}

func TestCounter_FailedReaderAddsNothing(t *testing.T) {
	c := NewCounter()
	if err := c.CountReader(strings.NewReader("ab\n"), nil); err != nil {
		t.Fatalf("CountReader failed: %v", err)
	}
	before := c.Table()

	err := c.CountReader(bytes.NewReader([]byte{'a', 'b', 0xfe, '\n'}), nil)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %v", err)
	}
	if ioErr.Op != "decode" {
		t.Errorf("wrong op: %q", ioErr.Op)
	}

	if actual := c.Table(); !reflect.DeepEqual(before, actual) {
		t.Errorf("failed input changed the table:\n\texpect: %v\n\tactual: %v", before, actual)
	}
	if c.Lines() != 1 || c.Files() != 1 {
		t.Errorf("failed input changed the statistics: lines=%d files=%d", c.Lines(), c.Files())
	}
}

func TestCountFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.txt", "aab\n")
	b := writeTestFile(t, dir, "b.txt", "ba\nc\n")

	table, err := CountFiles([]string{a, b}, nil)
	if err != nil {
		t.Fatalf("CountFiles failed: %v", err)
	}
	expect := FrequencyTable{'a': 3, 'b': 2, 'c': 1, EndOfLine: 3}
	if !reflect.DeepEqual(expect, table) {
		t.Errorf("wrong table:\n\texpect: %v\n\tactual: %v", expect, table)
	}

	_, err = CountFiles([]string{a, filepath.Join(dir, "missing.txt")}, nil)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %v", err)
	}
	if ioErr.Op != "read" {
		t.Errorf("wrong op: %q", ioErr.Op)
	}
}

func TestFrequencyTable_Dump(t *testing.T) {
	table := FrequencyTable{'b': 1, 'a': 2, EndOfLine: 1, 'z': 0}

	expectDump := strings.Join([]string{
		"FrequencyTable{\n",
		"\t'a' = 2\n",
		"\t'b' = 1\n",
		"\tEOL = 1\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = table.Dump(&buf)
	if actualDump := buf.String(); expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}
