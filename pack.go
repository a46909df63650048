package huffman

import (
	"bytes"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// MaxPadding is the largest legal value of a packed stream's header byte.
const MaxPadding = 7

// Padding returns the number of zero bits needed to round numBits up to a
// whole number of bytes.
func Padding(numBits int) int {
	return (8 - numBits%8) % 8
}

// Pack converts bits into a packed stream: one header byte holding the
// number of padding bits (0..7), followed by the bits themselves, most
// significant bit first, zero-filled to a byte boundary.
func Pack(bits Bits) []byte {
	var buf bytes.Buffer
	buf.Grow(1 + (bits.Len()+7)/8)
	_, err := PackTo(&buf, bits)
	assert.Assertf(err == nil, "bytes.Buffer write failed: %v", err)
	return buf.Bytes()
}

// PackTo writes the packed stream for bits to w.
func PackTo(w io.Writer, bits Bits) (int64, error) {
	padding := Padding(bits.Len())
	bw := bitio.NewWriter(w)
	if err := bw.WriteByte(byte(padding)); err != nil {
		return 0, err
	}
	for i := 0; i < bits.Len(); i++ {
		if err := bw.WriteBool(bits.Bit(i) != 0); err != nil {
			return 0, err
		}
	}
	// Close flushes the partial final byte, filling it with zeros.
	if err := bw.Close(); err != nil {
		return 0, err
	}
	return int64(1 + (bits.Len()+padding)/8), nil
}

// Unpack is the inverse of Pack.  It returns a *MalformedStreamError if the
// header is missing, if the padding count is outside [0, 7], if padding is
// claimed but no data bytes follow, or if any padding bit is non-zero.
func Unpack(data []byte) (Bits, error) {
	if len(data) == 0 {
		return Bits{}, malformed(0, "missing padding header")
	}

	br := bitio.NewReader(bytes.NewReader(data))
	header, err := br.ReadByte()
	if err != nil {
		return Bits{}, malformed(0, "cannot read padding header: %v", err)
	}
	padding := int(header)
	if padding > MaxPadding {
		return Bits{}, malformed(0, "padding %d outside [0, %d]", padding, MaxPadding)
	}
	if padding > 0 && len(data) == 1 {
		return Bits{}, malformed(0, "padding %d declared but no data bytes follow", padding)
	}

	numBits := 8*(len(data)-1) - padding
	var out Bits
	for i := 0; i < numBits; i++ {
		bit, err := br.ReadBool()
		if err != nil {
			return Bits{}, malformed(1+i/8, "cannot read bit %d: %v", i, err)
		}
		if bit {
			out.AppendBit(1)
		} else {
			out.AppendBit(0)
		}
	}
	for i := 0; i < padding; i++ {
		bit, err := br.ReadBool()
		if err != nil {
			return Bits{}, malformed(len(data)-1, "cannot read padding bit %d: %v", i, err)
		}
		if bit {
			return Bits{}, malformed(len(data)-1, "padding bits are not zero")
		}
	}
	return out, nil
}

// UnpackFrom reads a whole packed stream from r and unpacks it.
func UnpackFrom(r io.Reader) (Bits, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Bits{}, &IOError{Op: "read", Err: err}
	}
	return Unpack(data)
}
