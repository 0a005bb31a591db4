package wire

import (
	"bytes"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Bytes is an int32 length-prefixed byte sequence copied verbatim.
// A negative length on the wire is the null sequence and decodes to nothing.
type Bytes []byte

// Encode writes the int32 length of b followed by its bytes.
func (b Bytes) Encode(w io.Writer) error {
	if len(b) > math.MaxInt32 {
		return errors.Wrapf(ErrCodec, "byte sequence of %d bytes", len(b))
	}
	if err := writeInt(w, uint64(len(b)), 4); err != nil {
		return err
	}
	return b.EncodeNoLen(w)
}

// EncodeNoLen writes the raw bytes only.
func (b Bytes) EncodeNoLen(w io.Writer) error {
	_, err := w.Write(b)
	return err
}

// Decode appends the next byte sequence in r to b.
func (b *Bytes) Decode(r io.Reader) error {
	v, err := readInt(r, 4)
	if err != nil {
		return err
	}
	n := int32(v)
	if n <= 0 {
		return nil
	}

	// CopyN grows the buffer as bytes arrive, so a bogus length
	// cannot allocate ahead of the data.
	buf := bytes.NewBuffer(*b)
	copied, err := io.CopyN(buf, r, int64(n))
	*b = buf.Bytes()
	if err == io.EOF {
		return errors.Wrapf(ErrUnexpectedEOF, "byte sequence of %d bytes, got %d", n, copied)
	}
	return err
}

// readFull fills buf from r. Running out of input is ErrUnexpectedEOF;
// any other error comes from r and is returned as is.
func readFull(r io.Reader, buf []byte) error {
	n, err := io.ReadFull(r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrUnexpectedEOF, "want %d bytes, got %d", len(buf), n)
	}
	return err
}
