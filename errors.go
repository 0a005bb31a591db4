package wire

import "github.com/pkg/errors"

// Errors returned by encode and decode operations.
//
// Transport errors coming from the caller's io.Reader or io.Writer are never
// wrapped into these, so errors.Is tells a broken connection apart from a
// malformed payload.
var (
	// ErrUnexpectedEOF is returned when fewer bytes are available than a
	// fixed-size field, a declared length, a header or a chunk prefix requires.
	ErrUnexpectedEOF = errors.New("wire: unexpected eof")
	// ErrInvalidInput is returned for structurally invalid input.
	ErrInvalidInput = errors.New("wire: invalid input")
	// ErrCodec is returned when a length cannot be represented in the
	// fixed-width length field of its wire format.
	ErrCodec = errors.New("wire: length out of range")
	// ErrFrameTooLarge is returned when a frame exceeds the configured maximum size.
	ErrFrameTooLarge = errors.WithMessage(ErrInvalidInput, "frame too large")
)
