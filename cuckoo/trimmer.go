package cuckoo

import "math/bits"

// Trimmer orchestrates alternating U/V trim rounds over partitions,
// per spec.md §4.4: the memory-hard kernel that repeatedly removes every
// edge whose endpoint has degree 1 in the alive set, grounded directly on
// the Trimmer01 (count+immediate single-degree kill) and Trimmer02
// (final compaction) OpenCL kernels in kernel/cuckarookernel_new.go --
// generalized here into an explicit count-then-kill two-phase pass so
// the degree table (DegreeSet) can be reused across every (side, part)
// pair instead of being kernel-specific.
type Trimmer struct {
	Key    Key
	Params Params
	Alive  *AliveSet
}

// NewTrimmer allocates a Trimmer with a fresh, fully-alive AliveSet sized
// for Params.HalfSize nonces.
func NewTrimmer(key Key, p Params) *Trimmer {
	return &Trimmer{
		Key:    key,
		Params: p,
		Alive:  NewAliveSet(p.HalfSize()),
	}
}

// eachAliveNonce calls visit(n) for every nonce currently alive, sweeping
// blocks at stride nthreads*64 the way spec.md §4.4/§5 describes: "Each
// worker processes blocks at stride num_workers · words_per_block".
func (t *Trimmer) eachAliveNonce(nthreads int, visit func(n uint64)) {
	numWords := t.Alive.NumWords()
	runWorkers(nthreads, func(workerID int) {
		for wordIdx := uint64(workerID); wordIdx < numWords; wordIdx += uint64(nthreads) {
			block := t.Alive.Block(wordIdx)
			for block != 0 {
				bit := bits.TrailingZeros64(block)
				n := wordIdx*wordBits + uint64(bit)
				if n < t.Alive.N() {
					visit(n)
				}
				block &= block - 1
			}
		}
	})
}

// pass runs one count-then-kill trim pass for (side, part), per spec.md
// §4.4 steps 1-3.
func (t *Trimmer) pass(nthreads int, side Side, part uint64, degrees *DegreeSet) {
	p := t.Params
	partMask := p.PartMask()

	degrees.Reset()

	// Count phase.
	t.eachAliveNonce(nthreads, func(n uint64) {
		node := Node(t.Key, n, side, p)
		if node&partMask == part {
			degrees.Set(node >> p.PartBits)
		}
	})

	// Barrier: count writes must be visible to kill readers (spec.md §5).
	// runWorkers above already joins every count-phase goroutine before
	// returning, so no extra synchronization is required here.

	// Kill phase.
	t.eachAliveNonce(nthreads, func(n uint64) {
		node := Node(t.Key, n, side, p)
		if node&partMask == part && !degrees.Test(node>>p.PartBits) {
			t.Alive.Reset(n)
		}
	})
}

// Round performs one full round: pass(side, part) for every side and
// every partition, per spec.md §4.4.
func (t *Trimmer) Round(nthreads int, degrees *DegreeSet) {
	numParts := uint64(1) << t.Params.PartBits
	for _, side := range [...]Side{SideU, SideV} {
		for part := uint64(0); part < numParts; part++ {
			t.pass(nthreads, side, part, degrees)
		}
	}
}

// Trim runs ntrims rounds of trimming with nthreads workers, per spec.md
// §4.4. DegreeSet is allocated once and reused/reset across every pass,
// per spec.md §9's "reused buffer" design note. onProgress, if non-nil,
// is called after every round with the round index and the surviving
// alive count, for callers (the stats server) that want to report
// trimming progress as it happens.
func (t *Trimmer) Trim(nthreads int, ntrims uint, onProgress ...func(round uint, alive uint64)) {
	if nthreads < 1 {
		nthreads = 1
	}
	degreeSize := t.Params.HalfSize() >> t.Params.PartBits
	degrees := NewDegreeSet(degreeSize)
	for round := uint(0); round < ntrims; round++ {
		t.Round(nthreads, degrees)
		for _, cb := range onProgress {
			if cb != nil {
				cb(round, t.Alive.Count())
			}
		}
	}
}

// Overloaded reports whether post-trim alive density reaches 90% of
// CuckooSize, per spec.md §4.4's failure mode / §7's Overload status.
func (t *Trimmer) Overloaded() bool {
	alive := t.Alive.Count()
	threshold := (t.Params.CuckooSize() * 9) / 10
	return alive >= threshold
}
