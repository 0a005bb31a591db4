package snappy

import (
	"runtime"

	"github.com/Zereker/wire"
)

// defaultBlockSize matches the default block size of snappy-java's SnappyOutputStream.
const defaultBlockSize = 32 * 1024

// options holds the configuration shared by Reader, Writer and DecompressAll.
type options struct {
	logger wire.Logger

	maxChunkSize int // largest decompressed chunk a Reader accepts, 0 for no limit
	blockSize    int // uncompressed bytes per chunk written by a Writer
	concurrency  int // streams decompressed at once by DecompressAll
}

// Option configures a Reader, a Writer or DecompressAll.
type Option func(*options)

// LoggerOption sets the logger. If not set, the default slog logger is used.
func LoggerOption(logger wire.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// MaxChunkSizeOption limits the decompressed size of a single chunk.
// Chunks that would decode to more than size bytes fail with ErrChunkTooLarge.
func MaxChunkSizeOption(size int) Option {
	return func(o *options) {
		o.maxChunkSize = size
	}
}

// BlockSizeOption sets how many uncompressed bytes a Writer packs into each chunk.
func BlockSizeOption(size int) Option {
	return func(o *options) {
		o.blockSize = size
	}
}

// ConcurrencyOption sets how many streams DecompressAll works on at once.
func ConcurrencyOption(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func newOptions(opt []Option) options {
	var opts options
	for _, o := range opt {
		o(&opts)
	}
	checkOptions(&opts)
	return opts
}

// checkOptions fills in default values for unset options.
func checkOptions(opts *options) {
	if opts.maxChunkSize < 0 {
		opts.maxChunkSize = 0
	}

	if opts.blockSize <= 0 {
		opts.blockSize = defaultBlockSize
	}

	if opts.concurrency <= 0 {
		opts.concurrency = runtime.GOMAXPROCS(0)
	}

	if opts.logger == nil {
		opts.logger = wire.DefaultLogger()
	}
}
