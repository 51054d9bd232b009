package cuckoo

import "fmt"

// verifySolution independently checks spec.md §8 property 4: the
// multigraph on {U(n), V(n)} for the solution's nonces forms a single
// simple cycle of exactly ProofSize length. It is a test-only helper,
// deliberately separate from the solver itself, grounded on the
// alternation-walk in the teacher's cuckoo.Verify (cuckoo/cuckoo.go) --
// full external-proof verification is out of scope per spec.md §1.
func verifySolution(key Key, p Params, nonces []uint32) error {
	if len(nonces) != int(p.ProofSize) {
		return fmt.Errorf("wrong solution length %d", len(nonces))
	}
	for i := 1; i < len(nonces); i++ {
		if nonces[i] <= nonces[i-1] {
			return fmt.Errorf("nonces not strictly ascending")
		}
	}

	adj := make(map[uint64][]uint64)
	for _, n := range nonces {
		u := graphID(Node(key, uint64(n), SideU, p), SideU)
		v := graphID(Node(key, uint64(n), SideV, p), SideV)
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
	}
	for node, neighbors := range adj {
		if len(neighbors) != 2 {
			return fmt.Errorf("node %d has degree %d, want 2", node, len(neighbors))
		}
	}

	// Walk the cycle starting from the first edge's U endpoint and make
	// sure it closes after exactly ProofSize hops, touching every edge
	// once.
	start := graphID(Node(key, uint64(nonces[0]), SideU, p), SideU)
	prev := uint64(0)
	cur := start
	visitedEdges := 0
	for {
		next := adj[cur][0]
		if next == prev {
			next = adj[cur][1]
		}
		prev = cur
		cur = next
		visitedEdges++
		if cur == start {
			break
		}
		if visitedEdges > len(nonces) {
			return fmt.Errorf("cycle did not close within expected length")
		}
	}
	if visitedEdges != len(nonces) {
		return fmt.Errorf("cycle length %d, want %d", visitedEdges, len(nonces))
	}
	return nil
}
