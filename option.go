package wire

// defaultMaxFrameSize is the default maximum size of a single frame (1MB).
const defaultMaxFrameSize = 1024 * 1024

// options holds the configuration for a FrameReader and WriteFrame.
type options struct {
	logger       Logger
	maxFrameSize int // maximum payload size of a single frame
}

// Option is a function that configures a FrameReader or WriteFrame.
type Option func(*options)

// LoggerOption returns an Option that sets the logger.
// If not set, the default slog logger will be used.
func LoggerOption(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// MaxFrameSizeOption returns an Option that sets the largest frame payload
// a FrameReader accepts and WriteFrame produces. Larger frames fail with
// ErrFrameTooLarge when read and ErrCodec when written.
func MaxFrameSizeOption(size int) Option {
	return func(o *options) {
		o.maxFrameSize = size
	}
}

// checkOptions fills in default values for unset options.
func checkOptions(opts *options) {
	if opts.maxFrameSize <= 0 {
		opts.maxFrameSize = defaultMaxFrameSize
	}

	if opts.logger == nil {
		opts.logger = DefaultLogger()
	}
}
