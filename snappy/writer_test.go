package snappy

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestWriter_RoundTrip(t *testing.T) {
	original := fixtureText()

	for _, blockSize := range []int{1, 100, 4096, defaultBlockSize, 1 << 20} {
		var buf bytes.Buffer
		w := NewWriter(&buf, BlockSizeOption(blockSize))
		if _, err := w.Write(original); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		r, err := NewReader(buf.Bytes())
		if err != nil {
			t.Fatalf("block size %d: NewReader() error = %v", blockSize, err)
		}
		got, err := r.ReadToEnd(nil)
		if err != nil {
			t.Fatalf("block size %d: ReadToEnd() error = %v", blockSize, err)
		}
		if !bytes.Equal(got, original) {
			t.Errorf("block size %d: got %d bytes, want %d", blockSize, len(got), len(original))
		}
	}
}

func TestWriter_MatchesHandBuiltStream(t *testing.T) {
	original := fixtureText()

	var buf bytes.Buffer
	w := NewWriter(&buf, BlockSizeOption(4096))
	// many small writes must chunk the same way as one big one
	for i := 0; i < len(original); i += 333 {
		end := i + 333
		if end > len(original) {
			end = len(original)
		}
		if _, err := w.Write(original[i:end]); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if want := chunkedFixture(t, original, 4096); !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Writer produced %d bytes, hand built stream has %d", buf.Len(), len(want))
	}
}

func TestWriter_ChunkLayout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, BlockSizeOption(4))
	if _, err := io.WriteString(w, "abcdefghij"); err != nil {
		t.Fatalf("WriteString() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	stream := buf.Bytes()
	if !bytes.Equal(stream[:HeaderSize], testHeader) {
		t.Fatalf("header = %v, want %v", stream[:HeaderSize], testHeader)
	}

	var blocks []string
	for rest := stream[HeaderSize:]; len(rest) > 0; {
		size := int(binary.BigEndian.Uint32(rest))
		plain, err := Decompress(rest[4 : 4+size])
		if err != nil {
			t.Fatalf("Decompress() error = %v", err)
		}
		blocks = append(blocks, string(plain))
		rest = rest[4+size:]
	}

	want := []string{"abcd", "efgh", "ij"}
	if len(blocks) != len(want) {
		t.Fatalf("chunks = %q, want %q", blocks, want)
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, blocks[i], want[i])
		}
	}
}

func TestWriter_EmptyStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), testHeader) {
		t.Errorf("empty stream = %v, want header only", buf.Bytes())
	}
}

func TestWriter_Flush(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if _, err := w.Write([]byte("partial")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Write() emitted %d bytes before the block filled", buf.Len())
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	r, err := NewReader(buf.Bytes())
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	got, err := r.ReadToEnd(nil)
	if err != nil || string(got) != "partial" {
		t.Errorf("ReadToEnd() = %q, %v, want %q, nil", got, err, "partial")
	}
}

func TestWriter_WriteAfterClose(t *testing.T) {
	w := NewWriter(io.Discard)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := w.Write([]byte("x")); err != ErrWriterClosed {
		t.Errorf("Write() error = %v, want ErrWriterClosed", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestWriter_StickyError(t *testing.T) {
	errDisk := errors.New("disk full")
	w := NewWriter(errWriter{errDisk}, BlockSizeOption(2))

	if _, err := w.Write([]byte("abcd")); err != errDisk {
		t.Fatalf("Write() error = %v, want %v", err, errDisk)
	}
	if _, err := w.Write([]byte("e")); err != errDisk {
		t.Errorf("Write() after failure error = %v, want %v", err, errDisk)
	}
	if err := w.Close(); err != errDisk {
		t.Errorf("Close() error = %v, want %v", err, errDisk)
	}
}
