// Package snappy reads and writes the chunked snappy framing produced by
// snappy-java's SnappyOutputStream (xerial), which brokers use for
// snappy-compressed message sets.
//
// A stream is a 16-byte header followed by chunks, each an int32 length and
// that many bytes of one independently compressed snappy block:
//
//	0x82 'S' 'N' 'A' 'P' 'P' 'Y' 0x00 | version int32 = 1 | compatible int32 = 1
//	chunk length int32 | snappy block | chunk length int32 | snappy block | ...
//
// Block compression itself is github.com/golang/snappy.
package snappy

import (
	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/Zereker/wire"
)

// Compress returns the snappy block encoding of src.
func Compress(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

// Decompress returns the decoded form of the snappy block src.
func Decompress(src []byte) ([]byte, error) {
	return AppendDecompressed(nil, src)
}

// AppendDecompressed decodes the snappy block src and appends the result to dst.
// On error the contents of the returned slice are unspecified.
func AppendDecompressed(dst, src []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return dst, errors.WithMessage(wire.ErrInvalidInput, err.Error())
	}

	if limit := maxDecodedLen(len(src)); n > limit {
		return dst, errors.WithMessagef(wire.ErrInvalidInput,
			"block of %d bytes claims %d decoded bytes, at most %d possible", len(src), n, limit)
	}

	start := len(dst)
	dst = grow(dst, n)
	if _, err := snappy.Decode(dst[start:start+n], src); err != nil {
		return dst[:start], errors.WithMessage(wire.ErrInvalidInput, err.Error())
	}
	return dst[:start+n], nil
}

// maxDecodedLen bounds the decoded length of a snappy block of n bytes.
// The densest element is a 3-byte copy of 64 bytes, so no valid block
// expands by more than 22 times.
func maxDecodedLen(n int) int {
	return n*22 + 32
}

// grow makes room for n more bytes after len(b) without changing len(b).
func grow(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	grown := make([]byte, len(b), len(b)+n)
	copy(grown, b)
	return grown
}
