package uniprot

import (
	"github.com/charmbracelet/log"
	"github.com/klauspost/cpuid/v2"
	"github.com/pbnjay/memory"
)

// Options configures a stream parser. The zero value is not meant to be
// used directly; build one with NewOptions and the With* functions
// layered as explicit runtime values rather than hidden behind build
// tags.
type Options struct {
	workerCount        int
	channelCapacity    int
	internShortStrings bool
	exposeURLType      bool
	logger             *log.Logger
}

// Option mutates an Options value.
type Option func(*Options)

// WithWorkerCount sets the number of decoder workers for a parallel
// parse. Values below 1 are clamped to 1.
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.workerCount = n
	}
}

// WithChannelCapacity sets the work/result channel bound.
func WithChannelCapacity(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.channelCapacity = n
	}
}

// WithInternShortStrings enables or disables the string intern pool.
func WithInternShortStrings(enabled bool) Option {
	return func(o *Options) { o.internShortStrings = enabled }
}

// WithExposeURLType sets the structured-URL flag reported by
// Options.ExposeURLType. The entry decoders do not read the flag: link
// fields stay opaque strings and are not validated as URLs either way.
func WithExposeURLType(enabled bool) Option {
	return func(o *Options) { o.exposeURLType = enabled }
}

// WithLogger routes pipeline lifecycle diagnostics (producer start,
// worker pool size, teardown reason) to l instead of the default
// discarding logger. A library must never write to its caller's
// stderr unasked, so the default logger discards everything until a
// caller opts in.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// defaultWorkerCount is the host's physical core count, measured via
// cpuid rather than bare runtime.NumCPU so that hyperthreaded hosts do
// not oversubscribe decoder goroutines relative to actual execution
// units.
func defaultWorkerCount() int {
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		return n
	}
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return 1
}

// defaultChannelCapacity is a small multiple of the worker count,
// trimmed on memory-constrained hosts so memory use stays bounded even
// when frames are unusually large.
func defaultChannelCapacity(workers int) int {
	capacity := 4 * workers
	const lowMemoryThreshold = 512 * 1024 * 1024
	if free := memory.FreeMemory(); free != 0 && free < lowMemoryThreshold {
		capacity = workers
	}
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

// NewOptions builds an Options value from the given overrides, filling
// in defaults for anything left unset.
func NewOptions(opts ...Option) Options {
	o := Options{
		workerCount:        defaultWorkerCount(),
		internShortStrings: true,
		exposeURLType:      false,
		logger:             discardLogger(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.channelCapacity == 0 {
		o.channelCapacity = defaultChannelCapacity(o.workerCount)
	}
	return o
}

// WorkerCount reports the configured worker count.
func (o Options) WorkerCount() int { return o.workerCount }

// ChannelCapacity reports the configured channel bound.
func (o Options) ChannelCapacity() int { return o.channelCapacity }

// InternShortStrings reports whether the intern pool is enabled.
func (o Options) InternShortStrings() bool { return o.internShortStrings }

// ExposeURLType reports the structured-URL flag set by WithExposeURLType.
func (o Options) ExposeURLType() bool { return o.exposeURLType }

// Logger reports the configured pipeline lifecycle logger.
func (o Options) Logger() *log.Logger { return o.logger }
