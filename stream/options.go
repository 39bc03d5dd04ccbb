package stream

const defaultBufferSize = 4096

// Option configures a Decoder.
type Option func(*options)

type options struct {
	bufferSize int
}

func newOptions(opts []Option) *options {
	o := &options{bufferSize: defaultBufferSize}
	for _, opt := range opts {
		opt(o)
	}
	if o.bufferSize <= 0 {
		o.bufferSize = defaultBufferSize
	}
	return o
}

// WithBufferSize sets the chunk size for source reads. The buffer still
// grows past it when a single unit needs more room.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}
