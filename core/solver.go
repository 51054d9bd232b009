// Copyright (c) 2019 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package core wires the parsed configuration to the cuckoo solver core,
// replacing the teacher's stratum-pool MinerRobot with a single-header
// solve orchestrator.
package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Qitmeer/cuckoocycle/common"
	"github.com/Qitmeer/cuckoocycle/cuckoo"
)

// ProgressReporter receives a callback after every trim round, satisfied
// by *statsserver.Handler without core importing statsserver directly.
type ProgressReporter interface {
	Report(round uint, alive uint64)
}

// Solver runs one Cuckoo Cycle solve for a configured header, mirroring
// the teacher's MinerRobot's role as the top-level orchestrator, minus
// the stratum pool loop.
type Solver struct {
	cfg      *common.GlobalConfig
	key      cuckoo.Key
	p        cuckoo.Params
	progress ProgressReporter
}

// NewSolver builds a Solver from a parsed GlobalConfig, deriving the
// SipHash key from the configured header up front so config errors
// surface before any work is spent trimming.
func NewSolver(cfg *common.GlobalConfig) (*Solver, error) {
	p := cuckoo.Params{
		SizeShift: cfg.SolveConfig.SizeShift,
		ProofSize: cfg.SolveConfig.ProofSize,
		PartBits:  cfg.SolveConfig.PartBits,
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("core: invalid config: %w", err)
	}

	key := cuckoo.SetHeader([]byte(cfg.SolveConfig.Header))
	return &Solver{cfg: cfg, key: key, p: p}, nil
}

// SetProgressReporter wires an optional progress sink (the stats server)
// into the solve loop; onProgress fires once per trim round.
func (s *Solver) SetProgressReporter(r ProgressReporter) {
	s.progress = r
}

// Run executes one solve, checking ctx for cancellation once before the
// solve starts, the way the teacher's robot loop checked its Quit channel
// between jobs. A cancellation after that point does not interrupt the
// trimming or cycle finding already under way.
func (s *Solver) Run(ctx context.Context) (*cuckoo.Result, error) {
	runID := uuid.New().String()
	common.SolverLoger.Infof("[%s] solving header=%q sizeshift=%d proofsize=%d nthreads=%d ntrims=%d",
		runID, s.cfg.SolveConfig.Header, s.p.SizeShift, s.p.ProofSize,
		s.cfg.SolveConfig.NThreads, s.cfg.SolveConfig.NTrims)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	ntrims := s.cfg.SolveConfig.NTrims
	if ntrims == 0 {
		ntrims = s.p.DefaultNTrims()
	}

	var onProgress []func(round uint, alive uint64)
	if s.progress != nil {
		onProgress = append(onProgress, s.progress.Report)
	}

	result, err := cuckoo.Solve(s.key, s.p, int(s.cfg.SolveConfig.NThreads), ntrims, onProgress...)
	if err != nil {
		common.SolverLoger.Errorf("[%s] solve failed: %v", runID, err)
		return nil, err
	}

	for _, w := range result.Warnings {
		common.SolverLoger.Warning(fmt.Sprintf("[%s] %s", runID, w))
	}
	common.SolverLoger.Infof("[%s] status=%s solutions=%d", runID, result.Status, len(result.Solutions))

	if s.cfg.SolveConfig.DumpBits != "" {
		if err := common.DumpAliveBits(s.cfg.SolveConfig.DumpBits, result.AliveWords); err != nil {
			common.SolverLoger.Warning(fmt.Sprintf("[%s] dumpbits failed: %v", runID, err))
		}
	}

	return result, nil
}
