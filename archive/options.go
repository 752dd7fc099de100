package archive

import (
	"log/slog"

	"github.com/hupe1980/vecmath"
	"github.com/hupe1980/vecmath/codec"
)

const (
	// DefaultCacheSize is the number of decoded vectors kept in memory.
	DefaultCacheSize = 256
	// DefaultConcurrency bounds parallel loads in GetMany.
	DefaultConcurrency = 8
)

type options struct {
	codec            codec.Codec
	cacheSize        int
	concurrency      int
	readBytesPerSec  float64
	readBurst        int
	logger           *vecmath.Logger
	metricsCollector vecmath.MetricsCollector
}

func defaultOptions() options {
	return options{
		codec:            codec.Default,
		cacheSize:        DefaultCacheSize,
		concurrency:      DefaultConcurrency,
		logger:           vecmath.NoopLogger(),
		metricsCollector: vecmath.NoopMetricsCollector{},
	}
}

// Option configures an Archive.
type Option func(*options)

// WithCodec configures the codec used to encode new blobs.
// Existing blobs are decoded with the codec named in their frame.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCacheSize sets how many decoded vectors are cached.
// A size <= 0 disables the cache.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithConcurrency bounds the number of parallel loads in GetMany.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithReadLimit throttles blob reads to bytesPerSec with the given burst.
// Reads larger than burst are split into burst-sized chunks.
func WithReadLimit(bytesPerSec float64, burst int) Option {
	return func(o *options) {
		o.readBytesPerSec = bytesPerSec
		o.readBurst = burst
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(mc vecmath.MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metricsCollector = mc
		}
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *vecmath.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel logs to stderr in text format at the given level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = vecmath.NewTextLogger(level)
	}
}
