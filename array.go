package wire

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// Array is an int32 count-prefixed sequence of wire values.
// P is the pointer type of T and is normally inferred:
//
//	var ids wire.Array[wire.Int32, *wire.Int32]
type Array[T any, P Codec[T]] []T

// Encode writes the int32 element count followed by every element.
func (a Array[T, P]) Encode(w io.Writer) error {
	if len(a) > math.MaxInt32 {
		return errors.Wrapf(ErrCodec, "array of %d elements", len(a))
	}
	if err := writeInt(w, uint64(len(a)), 4); err != nil {
		return err
	}
	return a.EncodeNoLen(w)
}

// EncodeNoLen writes the concatenated element encodings without the count.
func (a Array[T, P]) EncodeNoLen(w io.Writer) error {
	for i := range a {
		if err := P(&a[i]).Encode(w); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads the element count and appends that many elements to a.
// A non-positive count appends nothing.
func (a *Array[T, P]) Decode(r io.Reader) error {
	v, err := readInt(r, 4)
	if err != nil {
		return err
	}
	return a.DecodeN(r, int(int32(v)))
}

// DecodeN appends n elements read from r, for arrays written with EncodeNoLen
// whose count is known from context.
func (a *Array[T, P]) DecodeN(r io.Reader, n int) error {
	for i := 0; i < n; i++ {
		var e T
		if err := P(&e).Decode(r); err != nil {
			return err
		}
		*a = append(*a, e)
	}
	return nil
}
