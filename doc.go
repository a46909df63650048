// Package huffman implements a static Huffman coder for line-oriented text.
// A single prefix-free code is derived from the aggregate character
// statistics of a corpus, persisted as a tree, and then used to turn text
// files into packed bitstreams and back.
//
// Line boundaries are carried by a reserved alphabet member, EndOfLine, so
// they survive the round trip without depending on the platform's line
// terminator bytes.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
