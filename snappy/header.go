package snappy

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/Zereker/wire"
)

const (
	// HeaderSize is the size of the stream header.
	HeaderSize = magicSize + 4 + 4

	magicSize        = 8
	streamVersion    = 1
	streamCompatible = 1
)

var magic = []byte{0x82, 'S', 'N', 'A', 'P', 'P', 'Y', 0}

// ValidateHeader checks the stream header at the start of b and returns
// the bytes following it. Only version 1, compatibility 1 streams are accepted.
func ValidateHeader(b []byte) ([]byte, error) {
	if len(b) < HeaderSize {
		return nil, errors.Wrapf(wire.ErrUnexpectedEOF, "stream header needs %d bytes, got %d", HeaderSize, len(b))
	}
	if !bytes.Equal(b[:magicSize], magic) {
		return nil, errors.WithMessage(wire.ErrInvalidInput, "bad stream magic")
	}
	b = b[magicSize:]

	if v := int32(binary.BigEndian.Uint32(b)); v != streamVersion {
		return nil, errors.WithMessagef(wire.ErrInvalidInput, "unsupported stream version %d", v)
	}
	if c := int32(binary.BigEndian.Uint32(b[4:])); c != streamCompatible {
		return nil, errors.WithMessagef(wire.ErrInvalidInput, "unsupported stream compatibility %d", c)
	}
	return b[8:], nil
}

// AppendHeader appends a version 1 stream header to dst.
func AppendHeader(dst []byte) []byte {
	dst = append(dst, magic...)
	dst = binary.BigEndian.AppendUint32(dst, streamVersion)
	return binary.BigEndian.AppendUint32(dst, streamCompatible)
}

// IsChunked reports whether b starts with the stream magic. Payloads that
// don't are a single raw snappy block.
func IsChunked(b []byte) bool {
	return bytes.HasPrefix(b, magic)
}
