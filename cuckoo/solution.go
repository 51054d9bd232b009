package cuckoo

import (
	"fmt"
	"sort"
)

// RecoverSolution rescans every alive nonce to recover the exact nonce
// list forming a found cycle, per spec.md §4.7. It is grounded on
// cuckoo.Verify's edge reconstruction loop in the teacher's cuckoo.go,
// run in reverse: Verify recomputes edges from a nonce list to check a
// claimed cycle, this recomputes nonces from a claimed edge set.
func RecoverSolution(key Key, p Params, alive *AliveSet, cycle []EdgePair) ([]uint32, error) {
	remaining := make(map[EdgePair]struct{}, len(cycle))
	for _, e := range cycle {
		remaining[e] = struct{}{}
	}

	var solution []uint32
	for n := uint64(0); n < alive.N(); n++ {
		if !alive.Test(n) {
			continue
		}
		u := Node(key, n, SideU, p)
		v := Node(key, n, SideV, p)
		e := EdgePair{U: u, V: v}
		if _, ok := remaining[e]; ok {
			solution = append(solution, uint32(n))
			if p.ProofSize > 2 {
				// Avoid duplicate hits from colliding edges, per
				// spec.md §4.7 step 3.
				delete(remaining, e)
			}
		}
	}

	if len(solution) != int(p.ProofSize) {
		return nil, fmt.Errorf("cuckoo: solution rescan yielded %d nonces, want %d", len(solution), p.ProofSize)
	}

	sort.Slice(solution, func(i, j int) bool { return solution[i] < solution[j] })
	return solution, nil
}
