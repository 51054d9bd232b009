package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeDeterministic(t *testing.T) {
	p := Params{SizeShift: 16, ProofSize: 6, PartBits: 0}
	key := SetHeader([]byte("hello"))

	for nonce := uint64(0); nonce < 100; nonce++ {
		a := Node(key, nonce, SideU, p)
		b := Node(key, nonce, SideU, p)
		assert.Equal(t, a, b, "node function must be pure/deterministic")
		assert.Less(t, a, p.HalfSize())
	}
}

func TestNodeDiffersBySide(t *testing.T) {
	p := Params{SizeShift: 16, ProofSize: 6, PartBits: 0}
	key := SetHeader([]byte("hello"))

	diff := 0
	for nonce := uint64(0); nonce < 50; nonce++ {
		if Node(key, nonce, SideU, p) != Node(key, nonce, SideV, p) {
			diff++
		}
	}
	assert.Greater(t, diff, 0, "U and V sides should not always coincide")
}

func TestSetHeaderDeterministic(t *testing.T) {
	k1 := SetHeader([]byte("39"))
	k2 := SetHeader([]byte("39"))
	assert.Equal(t, k1, k2)

	k3 := SetHeader([]byte("40"))
	assert.NotEqual(t, k1, k3)
}
