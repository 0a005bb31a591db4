package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Zereker/wire"
	"github.com/Zereker/wire/snappy"
)

// message is one record of a message set.
type message struct {
	offset wire.Int64
	key    wire.Bytes
	value  wire.Bytes
}

func (m message) Encode(w io.Writer) error {
	if err := m.offset.Encode(w); err != nil {
		return err
	}
	if err := m.key.Encode(w); err != nil {
		return err
	}
	return m.value.Encode(w)
}

func (m message) EncodeNoLen(w io.Writer) error { return m.Encode(w) }

func (m *message) Decode(r io.Reader) error {
	if err := m.offset.Decode(r); err != nil {
		return err
	}
	if err := m.key.Decode(r); err != nil {
		return err
	}
	return m.value.Decode(r)
}

// partition carries one snappy compressed message set.
type partition struct {
	id         wire.Int32
	messageSet wire.Bytes
}

func (p partition) Encode(w io.Writer) error {
	if err := p.id.Encode(w); err != nil {
		return err
	}
	return p.messageSet.Encode(w)
}

func (p partition) EncodeNoLen(w io.Writer) error { return p.Encode(w) }

func (p *partition) Decode(r io.Reader) error {
	if err := p.id.Decode(r); err != nil {
		return err
	}
	return p.messageSet.Decode(r)
}

// fetchResponse is a cut down fetch response for a single topic.
type fetchResponse struct {
	topic      wire.String
	partitions wire.Array[partition, *partition]
}

func (f fetchResponse) Encode(w io.Writer) error {
	if err := f.topic.Encode(w); err != nil {
		return err
	}
	return f.partitions.Encode(w)
}

func (f fetchResponse) EncodeNoLen(w io.Writer) error { return f.Encode(w) }

func (f *fetchResponse) Decode(r io.Reader) error {
	if err := f.topic.Decode(r); err != nil {
		return err
	}
	return f.partitions.Decode(r)
}

// compressMessages encodes messages without a count, the way a message set
// is laid out, and compresses them into a chunked snappy stream.
func compressMessages(messages wire.Array[message, *message], logger wire.Logger) ([]byte, error) {
	var buf bytes.Buffer
	w := snappy.NewWriter(&buf, snappy.BlockSizeOption(4096), snappy.LoggerOption(logger))
	if err := messages.EncodeNoLen(w); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeMessages reads messages until the message set is used up.
func decodeMessages(messageSet []byte) ([]message, error) {
	r := bytes.NewReader(messageSet)
	var messages []message
	for r.Len() > 0 {
		m, err := wire.DecodeNew[message](r)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func run(ctx context.Context, logger *slog.Logger) error {
	response := fetchResponse{topic: "events"}
	for id := 0; id < 3; id++ {
		var messages wire.Array[message, *message]
		for offset := 0; offset < 100; offset++ {
			messages = append(messages, message{
				offset: wire.Int64(offset),
				key:    wire.Bytes(fmt.Sprintf("key-%d", offset)),
				value:  wire.Bytes(fmt.Sprintf("partition %d payload %d", id, offset)),
			})
		}

		set, err := compressMessages(messages, logger)
		if err != nil {
			return err
		}
		response.partitions = append(response.partitions, partition{id: wire.Int32(id), messageSet: set})
	}

	var conn bytes.Buffer
	if err := wire.WriteFrame(&conn, response); err != nil {
		return err
	}
	logger.Info("response framed", "bytes", conn.Len())

	var received fetchResponse
	if err := wire.NewFrameReader(&conn, wire.LoggerOption(logger)).Decode(&received); err != nil {
		return err
	}

	streams := make([][]byte, 0, len(received.partitions))
	for _, p := range received.partitions {
		if !snappy.IsChunked(p.messageSet) {
			return fmt.Errorf("partition %d: message set is not a chunked snappy stream", p.id)
		}
		streams = append(streams, p.messageSet)
	}

	sets, err := snappy.DecompressAll(ctx, streams, snappy.LoggerOption(logger))
	if err != nil {
		return err
	}

	for i, set := range sets {
		messages, err := decodeMessages(set)
		if err != nil {
			return err
		}
		last := messages[len(messages)-1]
		logger.Info("partition decoded",
			"topic", received.topic,
			"partition", received.partitions[i].id,
			"messages", len(messages),
			"last_offset", last.offset,
			"last_value", string(last.value))
	}
	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if err := run(context.Background(), logger); err != nil {
		logger.Error("fetch example failed", "error", err)
		os.Exit(1)
	}
}
