package audiotag

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/simonhull/audiotag/internal/types"
)

// DefaultMaxAlloc is the default ceiling for a single allocation sized
// by a length read from the file.
const DefaultMaxAlloc = types.DefaultMaxAlloc

// Option configures Extract, ExtractReader and ExtractMany.
//
// Options use the functional options pattern:
//
//	tags, err := audiotag.Extract("song.flac",
//	    audiotag.WithDebug(),
//	    audiotag.WithMaxAlloc(16<<20),
//	)
type Option func(*options)

// options holds configuration for one call.
type options struct {
	logger      *slog.Logger
	maxAlloc    int64
	concurrency int
}

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:      slog.New(slog.DiscardHandler),
		maxAlloc:    DefaultMaxAlloc,
		concurrency: runtime.NumCPU(),
	}
}

func resolve(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// config returns the per-call configuration handed to the readers.
func (o *options) config() *types.Config {
	return &types.Config{Logger: o.logger, MaxAlloc: o.maxAlloc}
}

// WithLogger sends reader diagnostics to logger. Frame, block and atom
// discovery is logged at slog.LevelDebug.
//
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDebug logs reader diagnostics as text to standard error.
func WithDebug() Option {
	return WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

// WithMaxAlloc caps any single allocation whose size comes from a length
// field in the file: frame bodies, comment blocks, atom payloads and cover
// images. A length that fits in the file but exceeds n fails with an
// *OutOfMemoryError.
//
// Default is DefaultMaxAlloc (64 MiB). Values <= 0 restore the default.
func WithMaxAlloc(n int64) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultMaxAlloc
		}
		o.maxAlloc = n
	}
}

// WithConcurrency limits the number of files ExtractMany reads at once.
//
// Default is runtime.NumCPU(). Values < 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}
