package tfmt

import (
	"runtime"

	"github.com/rs/zerolog"

	"github.com/tagfmt/tfmt/parser"
)

// Option configures how a script is compiled and run.
type Option func(*options)

type options struct {
	maxDepth    int
	concurrency int
	logger      zerolog.Logger
}

func collectOptions(opts ...Option) *options {
	o := &options{
		maxDepth:    parser.DefaultMaxDepth,
		concurrency: runtime.GOMAXPROCS(0),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(o.maxDepth)}
}

// WithMaxDepth sets the maximum expression nesting depth accepted by the
// parser. The default is parser.DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithConcurrency sets how many files RunBatch interprets at once. The
// default is runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithLogger sets the logger used when running batches. Nothing is logged
// by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
