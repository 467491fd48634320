package uniprot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsStringSingular(t *testing.T) {
	s := Stats{EntriesSeen: 1, BytesRead: 100}
	assert.Equal(t, "1 entry, 100 bytes read", s.String())
}

func TestStatsStringPlural(t *testing.T) {
	s := Stats{EntriesSeen: 3, BytesRead: 900}
	assert.Equal(t, "3 entries, 900 bytes read", s.String())
}
