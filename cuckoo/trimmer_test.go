package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTrimMonotonic covers spec.md §8 property 2: alive membership at
// round k+1 is a subset of round k.
func TestTrimMonotonic(t *testing.T) {
	p := Params{SizeShift: 16, ProofSize: 6, PartBits: 0}
	key := SetHeader([]byte("hello"))

	tr := NewTrimmer(key, p)
	before := snapshotAlive(tr.Alive)

	degrees := NewDegreeSet(p.HalfSize() >> p.PartBits)
	tr.Round(2, degrees)
	after := snapshotAlive(tr.Alive)

	for n, wasAlive := range before {
		if !wasAlive {
			require.False(t, after[n], "dead nonces must never come back alive")
		}
	}
}

func TestTrimReducesOrPreservesCount(t *testing.T) {
	p := Params{SizeShift: 16, ProofSize: 6, PartBits: 0}
	key := SetHeader([]byte("hello"))

	tr := NewTrimmer(key, p)
	startCount := tr.Alive.Count()
	tr.Trim(4, 3)
	assert.LessOrEqual(t, tr.Alive.Count(), startCount)
}

// TestTrimDeterministicAcrossThreadCounts covers spec.md §8 property 1
// restricted to the trimming stage.
func TestTrimDeterministicAcrossThreadCounts(t *testing.T) {
	p := Params{SizeShift: 16, ProofSize: 6, PartBits: 1}
	key := SetHeader([]byte("hello"))

	var results []uint64
	for _, nthreads := range []int{1, 2, 8} {
		tr := NewTrimmer(key, p)
		tr.Trim(nthreads, 3)
		results = append(results, tr.Alive.Count())
	}
	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0], results[i], "trim result must not depend on worker count")
	}
}

func snapshotAlive(a *AliveSet) []bool {
	out := make([]bool, a.N())
	for n := uint64(0); n < a.N(); n++ {
		out[n] = a.Test(n)
	}
	return out
}
