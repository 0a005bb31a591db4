package snappy

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DecompressAll decompresses several independent chunked streams at once,
// such as the snappy message sets of the partitions in one fetch response.
// out[i] is the decompressed form of streams[i]. The first failure cancels
// streams not yet started and is returned.
func DecompressAll(ctx context.Context, streams [][]byte, opt ...Option) ([][]byte, error) {
	opts := newOptions(opt)
	out := make([][]byte, len(streams))

	opts.logger.Debug("decompressing streams", "count", len(streams), "concurrency", opts.concurrency)

	group, child := errgroup.WithContext(ctx)
	group.SetLimit(opts.concurrency)

	for i, stream := range streams {
		i, stream := i, stream
		group.Go(func() error {
			if err := child.Err(); err != nil {
				return err
			}

			r, err := NewReader(stream, opt...)
			if err != nil {
				opts.logger.Warn("invalid stream", "index", i, "error", err)
				return err
			}
			if out[i], err = r.ReadToEnd(nil); err != nil {
				opts.logger.Warn("decompress failed", "index", i, "error", err)
				return err
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	opts.logger.Debug("decompressed streams", "count", len(streams))
	return out, nil
}
