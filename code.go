package huffman

import (
	"bytes"
	"fmt"
	"strings"
)

// Bits represents an ordered sequence of bits of arbitrary length.
//
// The bits are stored most-significant-bit first: bit i lives in byte i/8
// at position 7-(i%8).  Any storage bits beyond Len() are always zero.
//
// The zero value is the empty sequence.  A Bits value that is appended to
// must not be shared with another Bits value; use Clone first.
type Bits struct {
	buf  []byte
	size int
}

// MakeBits constructs a Bits from the first size bits of buf.  The bytes
// are copied.
func MakeBits(buf []byte, size int) Bits {
	if size < 0 || size > 8*len(buf) {
		panic(fmt.Errorf("MakeBits: size %d out of range for %d bytes", size, len(buf)))
	}
	n := (size + 7) / 8
	b := Bits{buf: make([]byte, n), size: size}
	copy(b.buf, buf[:n])
	if rem := size % 8; rem != 0 {
		b.buf[n-1] &= 0xff << (8 - rem)
	}
	return b
}

// ParseBits parses a string of '0' and '1' characters.
func ParseBits(str string) (Bits, error) {
	var b Bits
	for i, ch := range str {
		switch ch {
		case '0':
			b.AppendBit(0)
		case '1':
			b.AppendBit(1)
		default:
			return Bits{}, fmt.Errorf("invalid bit %q at index %d", ch, i)
		}
	}
	return b, nil
}

// MustParseBits is like ParseBits, but panics on error.
func MustParseBits(str string) Bits {
	b, err := ParseBits(str)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of bits.
func (b Bits) Len() int {
	return b.size
}

// Bit returns the i'th bit, 0 or 1.
func (b Bits) Bit(i int) byte {
	if i < 0 || i >= b.size {
		panic(fmt.Errorf("Bits.Bit: index %d out of range [0, %d)", i, b.size))
	}
	return (b.buf[i>>3] >> (7 - uint(i&7))) & 1
}

// Bytes returns the underlying MSB-first storage, zero-filled to a byte
// boundary.  The caller must not modify it.
func (b Bits) Bytes() []byte {
	return b.buf
}

// AppendBit appends a single bit.  Any non-zero value is treated as 1.
func (b *Bits) AppendBit(bit byte) {
	if b.size&7 == 0 {
		b.buf = append(b.buf, 0)
	}
	if bit != 0 {
		b.buf[b.size>>3] |= 0x80 >> uint(b.size&7)
	}
	b.size++
}

// Append appends all of other's bits.
func (b *Bits) Append(other Bits) {
	if b.size&7 == 0 {
		b.buf = append(b.buf, other.buf...)
		b.size += other.size
		return
	}
	for i := 0; i < other.size; i++ {
		b.AppendBit(other.Bit(i))
	}
}

// Clone returns an independent copy of b.
func (b Bits) Clone() Bits {
	out := Bits{buf: make([]byte, len(b.buf)), size: b.size}
	copy(out.buf, b.buf)
	return out
}

// Equal returns true iff b and other hold the same sequence of bits.
func (b Bits) Equal(other Bits) bool {
	return b.size == other.size && bytes.Equal(b.buf, other.buf)
}

// HasPrefix returns true iff prefix is a prefix of b.
func (b Bits) HasPrefix(prefix Bits) bool {
	if prefix.size > b.size {
		return false
	}
	full := prefix.size >> 3
	if !bytes.Equal(b.buf[:full], prefix.buf[:full]) {
		return false
	}
	for i := full << 3; i < prefix.size; i++ {
		if b.Bit(i) != prefix.Bit(i) {
			return false
		}
	}
	return true
}

// String returns the '0'/'1' representation of this Bits.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.size)
	for i := 0; i < b.size; i++ {
		sb.WriteByte('0' + b.Bit(i))
	}
	return sb.String()
}

var _ fmt.Stringer = Bits{}
