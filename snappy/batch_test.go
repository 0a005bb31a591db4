package snappy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Zereker/wire"
)

func TestDecompressAll(t *testing.T) {
	var originals, streams [][]byte
	for i := 0; i < 8; i++ {
		original := bytes.Repeat([]byte(fmt.Sprintf("partition %d;", i)), 500*(i+1))
		originals = append(originals, original)
		streams = append(streams, chunkedFixture(t, original, 4096))
	}

	logger := &recordingLogger{}
	out, err := DecompressAll(context.Background(), streams, ConcurrencyOption(3), LoggerOption(logger))
	if err != nil {
		t.Fatalf("DecompressAll() error = %v", err)
	}
	if len(out) != len(originals) {
		t.Fatalf("DecompressAll() returned %d streams, want %d", len(out), len(originals))
	}
	for i := range originals {
		if !bytes.Equal(out[i], originals[i]) {
			t.Errorf("stream %d: got %d bytes, want %d", i, len(out[i]), len(originals[i]))
		}
	}
	if logger.warn != 0 {
		t.Errorf("warn = %d, want 0", logger.warn)
	}
}

func TestDecompressAll_Empty(t *testing.T) {
	out, err := DecompressAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("DecompressAll() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("DecompressAll() = %v, want empty", out)
	}
}

func TestDecompressAll_Error(t *testing.T) {
	streams := [][]byte{
		chunkedFixture(t, []byte("good"), 4096),
		append(AppendHeader(nil), 0, 0, 0, 0),
		chunkedFixture(t, []byte("also good"), 4096),
	}

	logger := &recordingLogger{}
	out, err := DecompressAll(context.Background(), streams, LoggerOption(logger))
	if !errors.Is(err, wire.ErrInvalidInput) {
		t.Errorf("DecompressAll() error = %v, want ErrInvalidInput", err)
	}
	if out != nil {
		t.Errorf("DecompressAll() = %v, want nil on error", out)
	}
	if logger.warn == 0 {
		t.Error("failure was not logged")
	}
}

func TestDecompressAll_BadHeader(t *testing.T) {
	streams := [][]byte{testCompressed}
	if _, err := DecompressAll(context.Background(), streams); !errors.Is(err, wire.ErrUnexpectedEOF) {
		t.Errorf("DecompressAll() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecompressAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	streams := [][]byte{chunkedFixture(t, []byte("data"), 4096)}
	if _, err := DecompressAll(ctx, streams); !errors.Is(err, context.Canceled) {
		t.Errorf("DecompressAll() error = %v, want context.Canceled", err)
	}
}

func ExampleDecompressAll() {
	var streams [][]byte
	for _, s := range []string{"alpha", "beta"} {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		w.Write([]byte(s))
		w.Close()
		streams = append(streams, buf.Bytes())
	}

	out, err := DecompressAll(context.Background(), streams)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out[0]), string(out[1]))
	// Output: alpha beta
}
