// Package wire implements the binary encoding used by the broker protocol.
// Values are written big-endian with fixed-width length prefixes:
// int16 for strings, int32 for arrays and byte sequences.
//
// Every wire type implements Encoder on its value and Decoder on its
// pointer, so composite types nest freely:
//
//	var topics wire.Array[wire.String, *wire.String]
//	err := topics.Decode(r)
package wire

import (
	"bytes"
	"io"
)

// Encoder writes the wire representation of a value.
type Encoder interface {
	// Encode writes the value including any length prefix.
	Encode(w io.Writer) error
	// EncodeNoLen writes the value without its leading count or length,
	// for contexts where the size is implied by surrounding data.
	// Types without a length prefix encode identically to Encode.
	EncodeNoLen(w io.Writer) error
}

// Decoder populates a value in place from its wire representation,
// consuming exactly the bytes its format requires.
type Decoder interface {
	Decode(r io.Reader) error
}

// Codec is satisfied by a pointer to a wire type.
// It lets generic code decode into a zero value of T.
type Codec[T any] interface {
	*T
	Encoder
	Decoder
}

// DecodeNew decodes a fresh value of type T from r.
//
//	s, err := wire.DecodeNew[wire.String](r)
func DecodeNew[T any, P Codec[T]](r io.Reader) (T, error) {
	var v T
	if err := P(&v).Decode(r); err != nil {
		return v, err
	}
	return v, nil
}

// Marshal returns the encoding of e.
func Marshal(e Encoder) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes d from the start of b. Trailing bytes are ignored.
func Unmarshal(b []byte, d Decoder) error {
	return d.Decode(bytes.NewReader(b))
}
