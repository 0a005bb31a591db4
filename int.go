package wire

import (
	"encoding/binary"
	"io"
)

// Fixed-width signed integers. They carry no length prefix.
type (
	Int8  int8
	Int16 int16
	Int32 int32
	Int64 int64
)

// writeInt writes the low width bytes of v big-endian.
// Every integer type goes through here so the byte layout is defined once.
func writeInt(w io.Writer, v uint64, width int) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[8-width:])
	return err
}

// readInt reads width bytes big-endian into the low bytes of the result.
// Short input surfaces as io.EOF or io.ErrUnexpectedEOF from io.ReadFull.
func readInt(r io.Reader, width int) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[8-width:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// Encode writes i as 1 big-endian byte.
func (i Int8) Encode(w io.Writer) error {
	return writeInt(w, uint64(i), 1)
}

// EncodeNoLen is the same as Encode.
func (i Int8) EncodeNoLen(w io.Writer) error {
	return i.Encode(w)
}

// Decode reads 1 big-endian byte into i.
func (i *Int8) Decode(r io.Reader) error {
	v, err := readInt(r, 1)
	if err != nil {
		return err
	}
	*i = Int8(v)
	return nil
}

// Encode writes i as 2 big-endian bytes.
func (i Int16) Encode(w io.Writer) error {
	return writeInt(w, uint64(i), 2)
}

// EncodeNoLen is the same as Encode.
func (i Int16) EncodeNoLen(w io.Writer) error {
	return i.Encode(w)
}

// Decode reads 2 big-endian bytes into i.
func (i *Int16) Decode(r io.Reader) error {
	v, err := readInt(r, 2)
	if err != nil {
		return err
	}
	*i = Int16(v)
	return nil
}

// Encode writes i as 4 big-endian bytes.
func (i Int32) Encode(w io.Writer) error {
	return writeInt(w, uint64(i), 4)
}

// EncodeNoLen is the same as Encode.
func (i Int32) EncodeNoLen(w io.Writer) error {
	return i.Encode(w)
}

// Decode reads 4 big-endian bytes into i.
func (i *Int32) Decode(r io.Reader) error {
	v, err := readInt(r, 4)
	if err != nil {
		return err
	}
	*i = Int32(v)
	return nil
}

// Encode writes i as 8 big-endian bytes.
func (i Int64) Encode(w io.Writer) error {
	return writeInt(w, uint64(i), 8)
}

// EncodeNoLen is the same as Encode.
func (i Int64) EncodeNoLen(w io.Writer) error {
	return i.Encode(w)
}

// Decode reads 8 big-endian bytes into i.
func (i *Int64) Decode(r io.Reader) error {
	v, err := readInt(r, 8)
	if err != nil {
		return err
	}
	*i = Int64(v)
	return nil
}
