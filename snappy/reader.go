package snappy

import (
	"encoding/binary"
	"io"

	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/Zereker/wire"
)

// ErrChunkTooLarge is returned when a chunk decodes to more bytes than
// the limit set with MaxChunkSizeOption.
var ErrChunkTooLarge = errors.WithMessage(wire.ErrInvalidInput, "chunk too large")

// chunkHeaderSize is the size of the int32 length preceding every chunk.
const chunkHeaderSize = 4

// Reader decompresses a chunked snappy stream held in memory.
//
// The Reader borrows the buffer passed to NewReader and never copies it;
// the caller must not modify it while the Reader is in use. A Reader is not
// safe for concurrent use. Independent Readers over the same buffer are.
type Reader struct {
	// compressed is the unread part of the stream. It always starts at a
	// chunk length prefix or is empty.
	compressed []byte
	// chunk holds the most recently decompressed chunk; pos is the next
	// byte to serve from it.
	chunk []byte
	pos   int

	logger wire.Logger
	opts   options
}

// NewReader validates the stream header in b and returns a Reader over the
// chunks following it.
func NewReader(b []byte, opt ...Option) (*Reader, error) {
	rest, err := ValidateHeader(b)
	if err != nil {
		return nil, err
	}

	opts := newOptions(opt)
	return &Reader{
		compressed: rest,
		logger:     opts.logger,
		opts:       opts,
	}, nil
}

// Buffered returns the number of decompressed bytes not yet read.
func (r *Reader) Buffered() int {
	return len(r.chunk) - r.pos
}

// Remaining returns the number of compressed bytes not yet decompressed.
func (r *Reader) Remaining() int {
	return len(r.compressed)
}

// Read implements io.Reader. It serves bytes from the current chunk and
// decompresses the next one when the current chunk is used up. A read may
// return fewer bytes than len(p) before the end of the stream.
// At the end of the stream Read returns 0, io.EOF, as often as it is called.
func (r *Reader) Read(p []byte) (int, error) {
	for r.Buffered() == 0 {
		if len(r.compressed) == 0 {
			return 0, io.EOF
		}
		if err := r.nextChunk(); err != nil {
			return 0, err
		}
	}

	n := copy(p, r.chunk[r.pos:])
	r.pos += n
	return n, nil
}

// ReadToEnd appends the rest of the decompressed stream to dst and returns
// the extended slice. Chunks not yet buffered are decompressed straight into
// dst. On error the returned slice must be discarded.
func (r *Reader) ReadToEnd(dst []byte) ([]byte, error) {
	if r.Buffered() > 0 {
		dst = append(dst, r.chunk[r.pos:]...)
		r.pos = len(r.chunk)
	}

	for len(r.compressed) > 0 {
		block, rest, err := r.splitChunk()
		if err != nil {
			return dst, err
		}
		if dst, err = AppendDecompressed(dst, block); err != nil {
			return dst, err
		}
		r.compressed = rest
	}
	return dst, nil
}

// WriteTo implements io.WriterTo. It writes the rest of the decompressed
// stream to w one chunk at a time. Errors from w are returned unchanged.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for {
		for r.Buffered() == 0 {
			if len(r.compressed) == 0 {
				return written, nil
			}
			if err := r.nextChunk(); err != nil {
				return written, err
			}
		}

		n, err := w.Write(r.chunk[r.pos:])
		r.pos += n
		written += int64(n)
		if err != nil {
			return written, err
		}
		if r.Buffered() > 0 {
			return written, io.ErrShortWrite
		}
	}
}

// nextChunk decompresses the next chunk into the reused chunk buffer.
func (r *Reader) nextChunk() error {
	block, rest, err := r.splitChunk()
	if err != nil {
		return err
	}

	r.chunk, err = AppendDecompressed(r.chunk[:0], block)
	r.pos = 0
	if err != nil {
		r.chunk = r.chunk[:0]
		return err
	}
	r.compressed = rest

	r.logger.Debug("snappy chunk decompressed",
		"compressed", len(block),
		"uncompressed", len(r.chunk),
		"remaining", len(r.compressed))
	return nil
}

// splitChunk parses the chunk at the front of the compressed view and
// returns its block and the bytes after it. The view itself is not advanced.
func (r *Reader) splitChunk() (block, rest []byte, err error) {
	if len(r.compressed) < chunkHeaderSize {
		return nil, nil, errors.Wrapf(wire.ErrUnexpectedEOF,
			"chunk length needs %d bytes, got %d", chunkHeaderSize, len(r.compressed))
	}

	size := int32(binary.BigEndian.Uint32(r.compressed))
	if size <= 0 {
		return nil, nil, errors.WithMessagef(wire.ErrInvalidInput, "chunk length %d", size)
	}

	data := r.compressed[chunkHeaderSize:]
	if int(size) > len(data) {
		return nil, nil, errors.Wrapf(wire.ErrUnexpectedEOF,
			"chunk of %d bytes, got %d", size, len(data))
	}
	block, rest = data[:size], data[size:]

	if limit := r.opts.maxChunkSize; limit > 0 {
		n, err := snappy.DecodedLen(block)
		if err != nil {
			return nil, nil, errors.WithMessage(wire.ErrInvalidInput, err.Error())
		}
		if n > limit {
			return nil, nil, errors.WithMessagef(ErrChunkTooLarge, "%d > %d", n, limit)
		}
	}
	return block, rest, nil
}
