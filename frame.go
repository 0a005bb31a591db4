package wire

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// frameHeaderSize is the size of the int32 size prefix of every frame.
const frameHeaderSize = 4

// WriteFrame writes e as a single size-prefixed frame: an int32 payload
// size followed by the encoding of e. The frame is handed to w in one Write.
// Payloads larger than the maximum frame size fail with ErrCodec and nothing
// is written, so a FrameReader with the same options accepts every frame
// WriteFrame produces.
func WriteFrame(w io.Writer, e Encoder, opt ...Option) error {
	var opts options
	for _, o := range opt {
		o(&opts)
	}
	checkOptions(&opts)

	var buf bytes.Buffer
	buf.Write(make([]byte, frameHeaderSize))
	if err := e.Encode(&buf); err != nil {
		return err
	}

	frame := buf.Bytes()
	size := len(frame) - frameHeaderSize
	if size > math.MaxInt32 {
		return errors.Wrapf(ErrCodec, "frame of %d bytes", size)
	}
	if size > opts.maxFrameSize {
		return errors.Wrapf(ErrCodec, "frame of %d bytes exceeds %d", size, opts.maxFrameSize)
	}
	binary.BigEndian.PutUint32(frame[:frameHeaderSize], uint32(size))

	_, err := w.Write(frame)
	return err
}

// limitedReader reads at most remaining bytes from r, then reports io.EOF.
// It confines a Decoder to the payload of the current frame.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (n int, err error) {
	if l.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err = l.r.Read(p)
	l.remaining -= int64(n)
	return
}

// reset points the reader at the next frame payload of the given size.
func (l *limitedReader) reset(size int64) {
	l.remaining = size
}

// FrameReader reads size-prefixed frames from a stream.
// It is not safe for concurrent use.
type FrameReader struct {
	reader  *bufio.Reader
	payload *limitedReader
	logger  Logger

	opts options
}

// NewFrameReader returns a FrameReader reading from r.
func NewFrameReader(r io.Reader, opt ...Option) *FrameReader {
	var opts options
	for _, o := range opt {
		o(&opts)
	}
	checkOptions(&opts)

	reader := bufio.NewReader(r)
	return &FrameReader{
		reader:  reader,
		payload: &limitedReader{r: reader},
		logger:  opts.logger,
		opts:    opts,
	}
}

// nextSize reads and validates the size prefix of the next frame.
// io.EOF is returned unchanged when the stream ends on a frame boundary.
func (f *FrameReader) nextSize() (int, error) {
	v, err := readInt(f.reader, frameHeaderSize)
	if err != nil {
		return 0, err
	}

	size := int32(v)
	if size < 0 {
		f.logger.Debug("rejected frame", "size", size, "reason", "negative size")
		return 0, errors.WithMessagef(ErrInvalidInput, "negative frame size %d", size)
	}
	if int(size) > f.opts.maxFrameSize {
		f.logger.Debug("rejected frame", "size", size, "max_frame_size", f.opts.maxFrameSize)
		return 0, errors.WithMessagef(ErrFrameTooLarge, "%d > %d", size, f.opts.maxFrameSize)
	}
	return int(size), nil
}

// ReadFrame returns the payload of the next frame.
func (f *FrameReader) ReadFrame() ([]byte, error) {
	size, err := f.nextSize()
	if err != nil {
		return nil, err
	}

	payload := make([]byte, size)
	if err := readFull(f.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Decode reads the next frame and decodes d from its payload.
// The decoder must consume the whole payload; leftover bytes are skipped
// and reported as ErrInvalidInput so the stream stays aligned.
// When d rejects the payload, the rest of the frame is skipped as well and
// the next Decode starts at the following frame. Transport errors are
// returned unchanged and leave the stream where it failed.
func (f *FrameReader) Decode(d Decoder) error {
	size, err := f.nextSize()
	if err != nil {
		return err
	}

	f.payload.reset(int64(size))
	if err := d.Decode(f.payload); err != nil {
		if !isFormatError(err) {
			return err
		}
		if _, derr := io.Copy(io.Discard, f.payload); derr != nil {
			return derr
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errors.Wrapf(ErrUnexpectedEOF, "frame of %d bytes", size)
		}
		return err
	}

	if left := f.payload.remaining; left > 0 {
		if _, err := io.Copy(io.Discard, f.payload); err != nil {
			return err
		}
		return errors.WithMessagef(ErrInvalidInput, "%d trailing bytes in frame of %d bytes", left, size)
	}
	return nil
}

// isFormatError reports whether err describes the payload rather than the
// transport: the payload ran out, or a decoder found it malformed.
func isFormatError(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF ||
		errors.Is(err, ErrUnexpectedEOF) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrCodec)
}
