package uniprot

import "io"

// decodeFunc is the per-flavour entry decoder signature shared by both
// drivers: a pure function from one frame's bytes to one typed entry.
type decodeFunc[T any] func(frame []byte, seq int64, pool *InternPool, opts Options) (T, error)

// sequentialIterator is the Sequential Driver: splitter and
// decoder composed directly on the calling goroutine, no threads.
type sequentialIterator[T any] struct {
	sp     *Splitter
	decode decodeFunc[T]
	pool   *InternPool
	opts   Options
	stats  Stats
	done   bool
}

func newSequentialIterator[T any](sp *Splitter, decode decodeFunc[T], pool *InternPool, opts Options) *sequentialIterator[T] {
	return &sequentialIterator[T]{sp: sp, decode: decode, pool: pool, opts: opts}
}

// Next drives the splitter until one frame is produced, decodes it, and
// returns the result. End-of-stream returns a terminal "no more items"
// signal (more == false); a decode error on entry k is returned with
// more == true so the caller sees it in position before deciding
// whether to poll again.
func (it *sequentialIterator[T]) Next() (T, error, bool) {
	var zero T
	if it.done {
		return zero, nil, false
	}

	frame, err := it.sp.Next()
	if err != nil {
		it.done = true
		if err == io.EOF {
			return zero, nil, false
		}
		return zero, err, true
	}

	it.stats.EntriesSeen++
	it.stats.BytesRead = it.sp.BytesRead()

	entry, err := it.decode(frame.Data, frame.Seq, it.pool, it.opts)
	if err != nil {
		if IsTerminal(err) {
			it.done = true
		}
		return zero, err, true
	}
	return entry, nil, true
}

func (it *sequentialIterator[T]) Stats() Stats {
	return it.stats
}

func (it *sequentialIterator[T]) Close() error {
	it.done = true
	return nil
}
