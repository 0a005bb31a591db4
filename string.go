package wire

import (
	"io"
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// String is an int16 length-prefixed UTF-8 string.
// A negative length on the wire is the null string and decodes to "".
type String string

// Encode writes the int16 byte length of s followed by its bytes.
// Strings longer than math.MaxInt16 bytes fail with ErrCodec.
func (s String) Encode(w io.Writer) error {
	if len(s) > math.MaxInt16 {
		return errors.Wrapf(ErrCodec, "string of %d bytes", len(s))
	}
	if err := writeInt(w, uint64(len(s)), 2); err != nil {
		return err
	}
	_, err := io.WriteString(w, string(s))
	return err
}

// EncodeNoLen is the same as Encode; a string is never written without its length.
func (s String) EncodeNoLen(w io.Writer) error { return s.Encode(w) }

// Decode replaces s with the next string in r.
// Bytes that are not valid UTF-8 fail with ErrInvalidInput.
func (s *String) Decode(r io.Reader) error {
	v, err := readInt(r, 2)
	if err != nil {
		return err
	}
	n := int16(v)
	if n <= 0 {
		*s = ""
		return nil
	}

	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return err
	}
	if !utf8.Valid(buf) {
		return errors.WithMessage(ErrInvalidInput, "string is not valid utf-8")
	}
	*s = String(buf)
	return nil
}
