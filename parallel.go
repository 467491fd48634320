package uniprot

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// parallelIterator is the Parallel Driver: a dedicated producer
// goroutine running the splitter, a pool of worker goroutines running
// the decoder, and a reassembler inlined into the caller's goroutine
// that restores document order before yielding each item.
type parallelIterator[T any] struct {
	sp         *Splitter
	resultChan chan resultItem
	cancel     chan struct{}
	closeOnce  sync.Once

	pending []resultItem // sparse-ish buffer, small enough to scan linearly
	nextSeq int64
	done    bool

	entriesSeen atomic.Int64
	logger      *log.Logger
}

func newParallelIterator[T any](sp *Splitter, decode decodeFunc[T], pool *InternPool, opts Options) *parallelIterator[T] {
	capacity := opts.ChannelCapacity()
	workers := opts.WorkerCount()
	workChan := make(chan workItem, capacity)
	resultChan := make(chan resultItem, capacity)
	cancel := make(chan struct{})

	logger := opts.Logger()
	logger.Debug("parallel driver starting", "workers", workers, "channelCapacity", capacity)

	go runProducer(sp, workChan, cancel, logger)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go runWorker(&wg, workChan, resultChan, decode, pool, opts, cancel)
	}
	go func() {
		wg.Wait()
		close(resultChan)
		logger.Debug("parallel driver workers drained")
	}()

	return &parallelIterator[T]{
		sp:         sp,
		resultChan: resultChan,
		cancel:     cancel,
		logger:     logger,
	}
}

// runProducer owns the source and the splitter exclusively and
// feeds frames to the work channel in document order. A splitter error
// is relayed as a single pass-through work item, carrying the sequence
// number the failed frame would have had, so the reassembler sees it
// at its correct position without a second writer on resultChan.
func runProducer(sp *Splitter, workChan chan<- workItem, cancel <-chan struct{}, logger *log.Logger) {
	defer close(workChan)
	for {
		frame, err := sp.Next()
		if err != nil {
			if err != io.EOF {
				logger.Debug("producer stopping on splitter error", "err", err)
				select {
				case workChan <- workItem{seq: sp.nextSeq, splitErr: err}:
				case <-cancel:
				}
			} else {
				logger.Debug("producer reached end of input", "framesProduced", sp.nextSeq)
			}
			return
		}
		select {
		case workChan <- workItem{seq: frame.Seq, frame: frame.Data}:
		case <-cancel:
			return
		}
	}
}

// runWorker loops: receive a work item, run the decoder (or relay a
// splitter error), push the result. It never retries and never mutates
// shared state beyond the intern pool.
func runWorker[T any](wg *sync.WaitGroup, workChan <-chan workItem, resultChan chan<- resultItem, decode decodeFunc[T], pool *InternPool, opts Options, cancel <-chan struct{}) {
	defer wg.Done()
	for {
		select {
		case item, ok := <-workChan:
			if !ok {
				return
			}
			var res resultItem
			if item.splitErr != nil {
				res = resultItem{seq: item.seq, err: item.splitErr}
			} else {
				entry, err := decode(item.frame, item.seq, pool, opts)
				res = resultItem{seq: item.seq, entry: entry, err: err}
			}
			select {
			case resultChan <- res:
			case <-cancel:
				return
			}
		case <-cancel:
			return
		}
	}
}

// Next implements the ordering discipline: yield next_expected
// immediately if already buffered, otherwise receive until it arrives,
// stashing anything that arrives out of order.
func (it *parallelIterator[T]) Next() (T, error, bool) {
	var zero T
	if it.done {
		return zero, nil, false
	}

	for {
		if r, ok := it.takePending(it.nextSeq); ok {
			it.nextSeq++
			return it.yield(r)
		}

		r, ok := <-it.resultChan
		if !ok {
			it.done = true
			return zero, nil, false
		}
		if r.seq == it.nextSeq {
			it.nextSeq++
			return it.yield(r)
		}
		it.pending = append(it.pending, r)
	}
}

// takePending finds and removes the pending item with the given
// sequence number, if present. The pending buffer is bounded by
// workerCount + channelCapacity, small enough that a linear scan
// beats maintaining a second index.
func (it *parallelIterator[T]) takePending(seq int64) (resultItem, bool) {
	for i, r := range it.pending {
		if r.seq == seq {
			it.pending[i] = it.pending[len(it.pending)-1]
			it.pending = it.pending[:len(it.pending)-1]
			return r, true
		}
	}
	return resultItem{}, false
}

func (it *parallelIterator[T]) yield(r resultItem) (T, error, bool) {
	var zero T
	if r.err != nil {
		if IsTerminal(r.err) {
			it.done = true
			it.Close()
		}
		return zero, r.err, true
	}
	entry, _ := r.entry.(T)
	it.entriesSeen.Add(1)
	return entry, nil, true
}

func (it *parallelIterator[T]) Stats() Stats {
	return Stats{EntriesSeen: it.entriesSeen.Load(), BytesRead: it.sp.BytesRead()}
}

// Close tears the pipeline down: the producer and any worker blocked on
// a channel send observe cancel closed and exit, which lets the
// wg.Wait goroutine close resultChan in turn. Safe to call more than
// once and safe to call from a different goroutine than the one
// driving Next (e.g. dropping the iterator on a timeout elsewhere).
func (it *parallelIterator[T]) Close() error {
	it.closeOnce.Do(func() {
		it.logger.Debug("parallel driver tearing down")
		close(it.cancel)
	})
	return nil
}
