package uniprot

import "io"

// newFlavourIterator builds either driver for a flavour over r. The
// splitter does not validate the root element until the first frame is
// requested, so construction itself cannot fail; a root
// mismatch surfaces from the iterator's first Next call, consistent
// with the rest of the error-reporting contract.
func newFlavourIterator[T any](r io.Reader, flavour Flavour, decode decodeFunc[T], parallel bool, opts []Option) Iterator[T] {
	o := NewOptions(opts...)
	sp := NewSplitter(r, flavour)
	pool := NewInternPool()
	if parallel {
		return newParallelIterator(sp, decode, pool, o)
	}
	return newSequentialIterator(sp, decode, pool, o)
}

// decodeSingleEntry is the single-entry parser: given a reader
// positioned at exactly one entry document (the shape a REST single
// record response takes), decode it directly without running the
// splitter or its root-element contract.
func decodeSingleEntry[T any](r io.Reader, decode decodeFunc[T], opts []Option) (T, error) {
	var zero T
	data, err := io.ReadAll(r)
	if err != nil {
		return zero, ioError(0, err)
	}
	o := NewOptions(opts...)
	pool := NewInternPool()
	return decode(data, 0, pool, o)
}

// ParseKB is the UniProtKB stream parser: parallel by default.
func ParseKB(r io.Reader, opts ...Option) Iterator[KBEntry] {
	return newFlavourIterator(r, FlavourUniProtKB, decodeKBEntry, true, opts)
}

// ParseKBSequential is the UniProtKB stream parser run on the single
// sequential driver, with no worker goroutines.
func ParseKBSequential(r io.Reader, opts ...Option) Iterator[KBEntry] {
	return newFlavourIterator(r, FlavourUniProtKB, decodeKBEntry, false, opts)
}

// ParseKBParallel is the UniProtKB parallel parser with an explicit
// worker count, overriding any WithWorkerCount already present in
// opts.
func ParseKBParallel(r io.Reader, workerCount int, opts ...Option) Iterator[KBEntry] {
	opts = append(append([]Option{}, opts...), WithWorkerCount(workerCount))
	return newFlavourIterator(r, FlavourUniProtKB, decodeKBEntry, true, opts)
}

// ParseSingleKBEntry decodes one UniProtKB <entry> document directly,
// for single-record REST responses.
func ParseSingleKBEntry(r io.Reader, opts ...Option) (KBEntry, error) {
	return decodeSingleEntry(r, decodeKBEntry, opts)
}

// ParseUniRef is the UniRef stream parser: parallel by default.
func ParseUniRef(r io.Reader, opts ...Option) Iterator[UniRefEntry] {
	return newFlavourIterator(r, FlavourUniRef, decodeUniRefEntry, true, opts)
}

// ParseUniRefSequential is the UniRef stream parser run sequentially.
func ParseUniRefSequential(r io.Reader, opts ...Option) Iterator[UniRefEntry] {
	return newFlavourIterator(r, FlavourUniRef, decodeUniRefEntry, false, opts)
}

// ParseUniRefParallel is the UniRef parallel parser with an explicit
// worker count.
func ParseUniRefParallel(r io.Reader, workerCount int, opts ...Option) Iterator[UniRefEntry] {
	opts = append(append([]Option{}, opts...), WithWorkerCount(workerCount))
	return newFlavourIterator(r, FlavourUniRef, decodeUniRefEntry, true, opts)
}

// ParseSingleUniRefEntry decodes one UniRef <entry> document directly.
func ParseSingleUniRefEntry(r io.Reader, opts ...Option) (UniRefEntry, error) {
	return decodeSingleEntry(r, decodeUniRefEntry, opts)
}

// ParseUniParc is the UniParc stream parser: parallel by default.
func ParseUniParc(r io.Reader, opts ...Option) Iterator[UniParcEntry] {
	return newFlavourIterator(r, FlavourUniParc, decodeUniParcEntry, true, opts)
}

// ParseUniParcSequential is the UniParc stream parser run sequentially.
func ParseUniParcSequential(r io.Reader, opts ...Option) Iterator[UniParcEntry] {
	return newFlavourIterator(r, FlavourUniParc, decodeUniParcEntry, false, opts)
}

// ParseUniParcParallel is the UniParc parallel parser with an explicit
// worker count.
func ParseUniParcParallel(r io.Reader, workerCount int, opts ...Option) Iterator[UniParcEntry] {
	opts = append(append([]Option{}, opts...), WithWorkerCount(workerCount))
	return newFlavourIterator(r, FlavourUniParc, decodeUniParcEntry, true, opts)
}

// ParseSingleUniParcEntry decodes one UniParc <entry> document directly.
func ParseSingleUniParcEntry(r io.Reader, opts ...Option) (UniParcEntry, error) {
	return decodeSingleEntry(r, decodeUniParcEntry, opts)
}
