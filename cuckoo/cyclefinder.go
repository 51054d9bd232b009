package cuckoo

import "fmt"

// EdgePair is one edge of a found cycle, expressed in the raw (unshifted)
// node space that nonce's U/V endpoint functions produce -- the form
// SolutionRecoverer needs to match back against nonces (spec.md §4.7).
type EdgePair struct {
	U, V uint64
}

// graphID maps a raw masked node plus its side into the disjoint node
// space CuckooMap operates over, per the GLOSSARY's "U side / V side"
// convention: U is shifted left by 1, V is shifted left by 1 and ORed
// with 1, so U-side and V-side ids never collide.
func graphID(node uint64, side Side) uint64 {
	return (node << 1) | uint64(side)
}

func toEdge(a, b uint64) EdgePair {
	if a&1 == 0 {
		return EdgePair{U: a >> 1, V: b >> 1}
	}
	return EdgePair{U: b >> 1, V: a >> 1}
}

// CycleFinder walks and merges paths in a CuckooMap to discover simple
// cycles of exactly Params.ProofSize length, per spec.md §4.6. It is
// grounded on CGraph.FindSolutions/path/Reverse in the teacher's
// cuckoo/graph.go, re-expressed over the flat CuckooMap from §4.5 instead
// of CGraph's map[int]int Dictionary.
type CycleFinder struct {
	Key    Key
	Params Params
	Alive  *AliveSet
	Map    *CuckooMap
}

// NewCycleFinder builds a CycleFinder over an already-trimmed AliveSet. A
// fresh, zeroed CuckooMap is allocated, per spec.md §5's "CuckooMap must
// be zero-initialized before any set" synchronization point.
func NewCycleFinder(key Key, p Params, alive *AliveSet) *CycleFinder {
	return &CycleFinder{
		Key:    key,
		Params: p,
		Alive:  alive,
		Map:    NewCuckooMap(p),
	}
}

// FindResult collects every exact-length cycle found, plus any non-fatal
// per-edge warnings (path overflow, drift exceeded), per spec.md §7's
// "tagged result values rather than immediate process termination".
type FindResult struct {
	Cycles   [][]EdgePair
	Warnings []string
}

// path walks the CuckooMap from start until a node with no stored parent
// is reached (the tree root) or MaxPathLen is exceeded, per spec.md
// §4.6 step 2. ok is false on overflow.
func (cf *CycleFinder) path(start uint64) (nodes []uint64, ok bool) {
	nodes = []uint64{start}
	cur := start
	maxLen := cf.Params.MaxPathLen()
	for {
		next := cf.Map.Lookup(cur)
		if next == 0 {
			return nodes, true
		}
		if len(nodes) >= maxLen {
			return nodes, false
		}
		nodes = append(nodes, next)
		cur = next
	}
}

// loopsBack reports whether the last node of an overflowed path already
// appears earlier in it -- the "illegal too-short cycle" case from
// spec.md §4.6's overflow handling, which is discarded rather than
// reported.
func loopsBack(nodes []uint64) bool {
	last := nodes[len(nodes)-1]
	for _, n := range nodes[:len(nodes)-1] {
		if n == last {
			return true
		}
	}
	return false
}

// Find sweeps every alive edge, building and merging cuckoo paths, and
// returns every cycle of exactly Params.ProofSize length found, per
// spec.md §4.6. It runs single-threaded: spec.md §5 notes that parallel
// path rewiring can create spurious cuckoo-graph cycles unrelated to the
// input graph, so this implementation favors the deterministic variant.
func (cf *CycleFinder) Find() FindResult {
	var res FindResult
	proofSize := int(cf.Params.ProofSize)

	for n := uint64(0); n < cf.Alive.N(); n++ {
		if !cf.Alive.Test(n) {
			continue
		}
		u0 := graphID(Node(cf.Key, n, SideU, cf.Params), SideU)
		if u0 == 0 {
			// node 0 is the CuckooMap empty-slot sentinel (spec.md §4.6
			// "Edge 0 skip").
			continue
		}
		v0 := graphID(Node(cf.Key, n, SideV, cf.Params), SideV)

		us, okU := cf.path(u0)
		vs, okV := cf.path(v0)
		if !okU {
			if loopsBack(us) {
				continue
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf("nonce %d: max path length exceeded on U side", n))
			continue
		}
		if !okV {
			if loopsBack(vs) {
				continue
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf("nonce %d: max path length exceeded on V side", n))
			continue
		}

		nu := len(us) - 1
		nv := len(vs) - 1

		if us[nu] == vs[nv] {
			// Paths meet: strip the common suffix, per spec.md §4.6 step 3.
			min := nu
			if nv < min {
				min = nv
			}
			i, j := nu-min, nv-min
			for us[i] != vs[j] {
				i++
				j++
			}
			length := i + j + 1
			if length == proofSize {
				edges := make([]EdgePair, 0, length)
				for k := 0; k < i; k++ {
					edges = append(edges, toEdge(us[k], us[k+1]))
				}
				for k := 0; k < j; k++ {
					edges = append(edges, toEdge(vs[k], vs[k+1]))
				}
				edges = append(edges, toEdge(u0, v0))
				res.Cycles = append(res.Cycles, edges)
			}
			// Otherwise the edge would close a wrong-length cycle in the
			// pseudoforest; skip it without grafting (spec.md §4.6/§9).
			continue
		}

		// No meeting: graft the shorter path into the longer one, per
		// spec.md §4.6 step 5, tie-breaking toward inverting the v-path
		// when nu == nv.
		if nu < nv {
			for k := nu - 1; k >= 0; k-- {
				cf.Map.Set(us[k+1], us[k])
			}
			cf.Map.Set(u0, v0)
		} else {
			for k := nv - 1; k >= 0; k-- {
				cf.Map.Set(vs[k+1], vs[k])
			}
			cf.Map.Set(v0, u0)
		}
	}

	if cf.Map.DriftExceeded() {
		res.Warnings = append(res.Warnings, "cuckoo map probe distance exceeded MAXDRIFT")
	}
	return res
}
