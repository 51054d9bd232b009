package cuckoo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliveSetStartsAllAlive(t *testing.T) {
	a := NewAliveSet(200)
	require.Equal(t, uint64(200), a.Count())
	for n := uint64(0); n < 200; n++ {
		assert.True(t, a.Test(n))
	}
}

func TestAliveSetResetIsMonotonic(t *testing.T) {
	a := NewAliveSet(128)
	a.Reset(5)
	a.Reset(5)
	a.Reset(70)

	assert.False(t, a.Test(5))
	assert.False(t, a.Test(70))
	assert.True(t, a.Test(6))
	assert.Equal(t, uint64(126), a.Count())
}

func TestAliveSetConcurrentResetNoLostUpdates(t *testing.T) {
	a := NewAliveSet(10000)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for n := uint64(worker); n < 10000; n += 8 {
				a.Reset(n)
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, uint64(0), a.Count())
}

func TestAliveSetBlockIsComplementOfDead(t *testing.T) {
	a := NewAliveSet(128)
	a.Reset(3)
	block := a.Block(0)
	assert.Equal(t, uint64(0), block&(1<<3))
	assert.NotEqual(t, uint64(0), block&(1<<4))
}
