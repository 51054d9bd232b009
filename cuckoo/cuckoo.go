package cuckoo

// Status is the solver's outcome status, per spec.md §6/§7.
type Status int

const (
	StatusOK Status = iota
	StatusOverloaded
	StatusNoSolution
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOverloaded:
		return "overloaded"
	case StatusNoSolution:
		return "no-solution"
	default:
		return "unknown"
	}
}

// Result is the output of one solve run, per spec.md §6.
type Result struct {
	Status     Status
	Solutions  [][]uint32
	Warnings   []string
	AliveWords []uint64 // final AliveSet snapshot, for the -dumpbits debug flag
}

// Solve runs the full edge-trimming + cycle-finding pipeline for one
// header/key, the data flow described in spec.md §2: trim rounds prune
// the AliveSet, then the CycleFinder builds a CuckooMap over what
// survives, and every exact-length cycle is handed to RecoverSolution.
func Solve(key Key, p Params, nthreads int, ntrims uint, onProgress ...func(round uint, alive uint64)) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	trimmer := NewTrimmer(key, p)
	trimmer.Trim(nthreads, ntrims, onProgress...)

	if trimmer.Overloaded() {
		return &Result{Status: StatusOverloaded, AliveWords: trimmer.Alive.AliveWords()}, nil
	}

	finder := NewCycleFinder(key, p, trimmer.Alive)
	found := finder.Find()

	result := &Result{Warnings: found.Warnings, AliveWords: trimmer.Alive.AliveWords()}
	for _, cycle := range found.Cycles {
		solution, err := RecoverSolution(key, p, trimmer.Alive, cycle)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			continue
		}
		result.Solutions = append(result.Solutions, solution)
	}

	if len(result.Solutions) == 0 {
		result.Status = StatusNoSolution
	} else {
		result.Status = StatusOK
	}
	return result, nil
}
