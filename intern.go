package uniprot

import (
	"github.com/dgraph-io/ristretto"
)

// InternPool is an explicit, caller-constructible dependency for
// deduplicating short repeated strings — enum-like attribute values,
// accession prefixes — during decoding. It is modeled as a handle
// passed into decoders, not hidden global state, so tests can
// construct isolated pools instead of sharing process-wide mutable
// state.
//
// It is backed by ristretto, a sharded admission-counted cache, so the
// pool's internal synchronisation does not serialize decoders in the
// common case: reads and writes are striped across internal shards
// rather than guarded by one lock.
// Interning is purely an optimisation — a cache miss or eviction simply
// means the caller's own string is kept instead of a shared one, which
// has no observable semantic effect.
type InternPool struct {
	cache *ristretto.Cache
}

// NewInternPool constructs an empty intern pool sized for short,
// frequently repeated strings such as enum values and database prefixes.
func NewInternPool() *InternPool {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     1 << 24, // 16 MiB of interned string bytes
		BufferItems: 64,
	})
	if err != nil {
		// ristretto.NewCache only fails on invalid Config constants that
		// this constructor controls, never on runtime conditions; treat
		// it as an interning-disabled pool rather than propagate a
		// configuration bug to callers.
		return &InternPool{}
	}
	return &InternPool{cache: c}
}

// Intern returns a canonical copy of s if one has already been stored,
// otherwise it stores s and returns it unchanged.
func (p *InternPool) Intern(s string) string {
	if p == nil || p.cache == nil || s == "" {
		return s
	}
	if v, ok := p.cache.Get(s); ok {
		if canon, ok := v.(string); ok {
			return canon
		}
	}
	p.cache.Set(s, s, int64(len(s)))
	return s
}
