package snappy

import (
	"encoding/binary"
	"fmt"
	"strings"
	"testing"
)

// fixtureText returns a deterministic text of roughly 40KB resembling a
// dump of fetched messages.
func fixtureText() []byte {
	var b strings.Builder
	for i := 0; i < 600; i++ {
		fmt.Fprintf(&b, "offset=%06d partition=%d key=user-%d value=%s\n",
			i, i%3, i*7%101, strings.Repeat(string(rune('a'+i%26)), i%40))
	}
	return []byte(b.String())
}

// chunk returns one framed chunk holding the compressed form of block.
func chunk(t *testing.T, block []byte) []byte {
	t.Helper()
	c, err := Compress(block)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	return append(binary.BigEndian.AppendUint32(nil, uint32(len(c))), c...)
}

// chunkedFixture builds a stream by hand, blockSize uncompressed bytes per
// chunk, in the layout snappy-java writes.
func chunkedFixture(t *testing.T, data []byte, blockSize int) []byte {
	t.Helper()
	stream := AppendHeader(nil)
	for len(data) > 0 {
		n := blockSize
		if n > len(data) {
			n = len(data)
		}
		stream = append(stream, chunk(t, data[:n])...)
		data = data[n:]
	}
	return stream
}
