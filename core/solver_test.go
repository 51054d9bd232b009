package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qitmeer/cuckoocycle/common"
)

func testConfig(header string) *common.GlobalConfig {
	return &common.GlobalConfig{
		SolveConfig: common.SolveConfig{
			Header:    header,
			SizeShift: 16,
			ProofSize: 6,
			PartBits:  0,
			NTrims:    0, // exercise the DefaultNTrims fallback
			NThreads:  2,
		},
	}
}

func TestNewSolverRejectsBadParams(t *testing.T) {
	cfg := testConfig("bad-config")
	cfg.SolveConfig.ProofSize = 5 // odd, invalid per spec
	_, err := NewSolver(cfg)
	assert.Error(t, err)
}

func TestSolverRunProducesAResult(t *testing.T) {
	cfg := testConfig("core-solver-test")
	s, err := NewSolver(cfg)
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.AliveWords)
}

func TestSolverRunHonorsCancellation(t *testing.T) {
	cfg := testConfig("core-solver-cancel-test")
	s, err := NewSolver(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
