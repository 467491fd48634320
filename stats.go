package uniprot

import (
	"fmt"

	"github.com/gedex/inflector"
)

// Stats is a running counter a caller can read once an iterator has
// finished draining. It is not persisted and not a cache — it exists
// purely so long-running dumps can report progress.
type Stats struct {
	EntriesSeen int64
	BytesRead   int64
}

// String renders a short human-readable summary, e.g. "3 entries, 900
// bytes read".
func (s Stats) String() string {
	noun := "entry"
	if s.EntriesSeen != 1 {
		noun = inflector.Pluralize(noun)
	}
	return fmt.Sprintf("%d %s, %d bytes read", s.EntriesSeen, noun, s.BytesRead)
}
