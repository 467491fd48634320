package uniprot

// Iterator is the user-facing result sequence: a lazy, finite
// sequence of (entry | error) items.
//
// Next returns more == false once the sequence is exhausted cleanly.
// Until then it returns either a decoded entry (err == nil) or an
// error item (err != nil). A terminal error, per IsTerminal, ends the
// sequence outright; a per-entry decode error may be polled past by
// calling Next again.
type Iterator[T any] interface {
	Next() (T, error, bool)
	Stats() Stats
	Close() error
}
