package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverSolutionRoundTrip(t *testing.T) {
	p := Params{SizeShift: 16, ProofSize: 4, PartBits: 0}
	key := SetHeader([]byte("recover-test"))
	alive := NewAliveSet(p.HalfSize())

	// Pick four arbitrary nonces and pretend they form the target cycle.
	nonces := []uint32{1, 2, 3, 4}
	var cycle []EdgePair
	for _, n := range nonces {
		cycle = append(cycle, EdgePair{
			U: Node(key, uint64(n), SideU, p),
			V: Node(key, uint64(n), SideV, p),
		})
	}

	solution, err := RecoverSolution(key, p, alive, cycle)
	require.NoError(t, err)
	assert.ElementsMatch(t, nonces, solution)
	assert.True(t, sortedAscending(solution))
}

func TestRecoverSolutionFailsOnWrongCount(t *testing.T) {
	p := Params{SizeShift: 16, ProofSize: 4, PartBits: 0}
	key := SetHeader([]byte("recover-test"))
	alive := NewAliveSet(p.HalfSize())

	// Only give it two edges when ProofSize demands four nonces.
	cycle := []EdgePair{
		{U: Node(key, 1, SideU, p), V: Node(key, 1, SideV, p)},
		{U: Node(key, 2, SideU, p), V: Node(key, 2, SideV, p)},
	}
	_, err := RecoverSolution(key, p, alive, cycle)
	assert.Error(t, err)
}

func TestRecoverSolutionSkipsDeadNonces(t *testing.T) {
	p := Params{SizeShift: 16, ProofSize: 2, PartBits: 0}
	key := SetHeader([]byte("recover-test"))
	alive := NewAliveSet(p.HalfSize())
	alive.Reset(1) // kill nonce 1 even though its edge matches

	cycle := []EdgePair{
		{U: Node(key, 1, SideU, p), V: Node(key, 1, SideV, p)},
		{U: Node(key, 2, SideU, p), V: Node(key, 2, SideV, p)},
	}
	_, err := RecoverSolution(key, p, alive, cycle)
	assert.Error(t, err, "dead nonce 1 must not be recoverable")
}

func sortedAscending(nonces []uint32) bool {
	for i := 1; i < len(nonces); i++ {
		if nonces[i] <= nonces[i-1] {
			return false
		}
	}
	return true
}
