package cuckoo

import "sync/atomic"

// MaxDrift bounds the open-addressing probe distance, per spec.md §3:
// MAXDRIFT = 2^(KEYBITS-IDXSHIFT), with KEYBITS = 64-SIZESHIFT.
func MaxDrift(p Params) uint64 {
	shift := 64 - p.SizeShift - p.IdxShift()
	return uint64(1) << shift
}

// CuckooMap is the lossy open-addressed node->node table from spec.md
// §4.5, re-architected per §9's design note as a flat array of atomic
// 64-bit packed (key_node || value_node) slots instead of the teacher's
// CGraph.U/V map[int]int (cuckoo/graph.go) -- a direct generalization of
// that path-building idea onto a bounded, preallocated buffer.
type CuckooMap struct {
	slots    []uint64
	params   Params
	idxShift uint
	maxDrift uint64

	driftExceeded uint32 // soft warning flag, atomic bool (0/1)
}

// NewCuckooMap allocates a CuckooMap sized per params.CuckooSize.
func NewCuckooMap(p Params) *CuckooMap {
	return &CuckooMap{
		slots:    make([]uint64, p.CuckooSize()),
		params:   p,
		idxShift: p.IdxShift(),
		maxDrift: MaxDrift(p),
	}
}

// Reset zeros every slot, required before cycle finding begins (spec.md
// §5's "CuckooMap must be zero-initialized before any set").
func (c *CuckooMap) Reset() {
	for i := range c.slots {
		c.slots[i] = 0
	}
}

func (c *CuckooMap) pack(u, v uint64) uint64 {
	// The full node id u is the key, discriminating every node that
	// shares a probe bucket (u>>idxShift); value occupies the low
	// SizeShift bits, per spec.md §3.
	return (u << c.params.SizeShift) | v
}

func (c *CuckooMap) unpackKey(slot uint64) uint64 {
	return slot >> c.params.SizeShift
}

func (c *CuckooMap) unpackValue(slot uint64) uint64 {
	return slot & ((uint64(1) << c.params.SizeShift) - 1)
}

// DriftExceeded reports whether any Set call had to probe beyond
// MaxDrift -- a soft warning per spec.md §9's Open Questions.
func (c *CuckooMap) DriftExceeded() bool {
	return atomic.LoadUint32(&c.driftExceeded) != 0
}

// Set inserts or replaces node u's companion value v, per spec.md §4.5.
// Node value 0 is the reserved empty-slot sentinel and is never stored as
// a key or a value.
func (c *CuckooMap) Set(u, v uint64) {
	size := uint64(len(c.slots))
	hi := u >> c.idxShift
	entry := c.pack(u, v)
	for drift := uint64(0); drift < size; drift++ {
		idx := (hi + drift) % size
		old := atomic.LoadUint64(&c.slots[idx])
		if old == 0 {
			if atomic.CompareAndSwapUint64(&c.slots[idx], 0, entry) {
				if drift > c.maxDrift {
					atomic.StoreUint32(&c.driftExceeded, 1)
				}
				return
			}
			// lost the race; re-read and continue probing from here
			old = atomic.LoadUint64(&c.slots[idx])
		}
		if c.unpackKey(old) == u {
			atomic.StoreUint64(&c.slots[idx], entry)
			return
		}
	}
	// table full along the whole probe sequence: degrade silently, per
	// the "soft warning" resolution in DESIGN.md's Open Question.
	atomic.StoreUint32(&c.driftExceeded, 1)
}

// Lookup returns the value stored for u, or 0 if u has no entry, per
// spec.md §4.5.
func (c *CuckooMap) Lookup(u uint64) uint64 {
	size := uint64(len(c.slots))
	hi := u >> c.idxShift
	for drift := uint64(0); drift < size; drift++ {
		idx := (hi + drift) % size
		old := atomic.LoadUint64(&c.slots[idx])
		if old == 0 {
			return 0
		}
		if c.unpackKey(old) == u {
			return c.unpackValue(old)
		}
	}
	return 0
}
