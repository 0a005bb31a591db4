package snappy

import (
	"encoding/binary"
	"io"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// ErrWriterClosed is returned when writing to a closed Writer.
var ErrWriterClosed = errors.New("snappy: writer closed")

// Writer produces a chunked snappy stream readable by NewReader.
// Input is buffered and compressed one block at a time; each block becomes
// one chunk. Writer is not safe for concurrent use.
type Writer struct {
	w   io.Writer
	err error

	block   []byte // pending uncompressed input, at most blockSize bytes
	scratch []byte // chunk length prefix followed by the compressed block

	wroteHeader bool
	closed      bool

	opts options
}

// NewWriter returns a Writer that writes a chunked stream to w.
func NewWriter(w io.Writer, opt ...Option) *Writer {
	opts := newOptions(opt)
	return &Writer{
		w:     w,
		block: make([]byte, 0, opts.blockSize),
		opts:  opts,
	}
}

// Write buffers p, emitting a chunk every time a block fills up.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	if w.err != nil {
		return 0, w.err
	}

	var written int
	for len(p) > 0 {
		n := copy(w.block[len(w.block):cap(w.block)], p)
		w.block = w.block[:len(w.block)+n]
		p = p[n:]
		written += n

		if len(w.block) == cap(w.block) {
			if err := w.Flush(); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// Flush compresses any buffered input into a chunk and writes it out.
// The header is written first if it has not been yet.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	if len(w.block) == 0 {
		return nil
	}

	n := snappy.MaxEncodedLen(len(w.block))
	if cap(w.scratch) < chunkHeaderSize+n {
		w.scratch = make([]byte, chunkHeaderSize+n)
	}
	encoded := snappy.Encode(w.scratch[chunkHeaderSize:chunkHeaderSize+n], w.block)
	chunk := w.scratch[:chunkHeaderSize+len(encoded)]
	binary.BigEndian.PutUint32(chunk, uint32(len(encoded)))

	w.opts.logger.Debug("snappy chunk compressed",
		"uncompressed", len(w.block),
		"compressed", len(encoded))

	w.block = w.block[:0]
	return w.write(chunk)
}

// Close flushes buffered input. The underlying io.Writer is not closed.
// An empty stream still gets its header.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	err := w.Flush()
	w.closed = true
	return err
}

func (w *Writer) writeHeader() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	return w.write(AppendHeader(make([]byte, 0, HeaderSize)))
}

// write sends b to the underlying writer, remembering the first failure.
func (w *Writer) write(b []byte) error {
	if _, err := w.w.Write(b); err != nil {
		w.err = err
		return err
	}
	return nil
}
