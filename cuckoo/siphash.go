package cuckoo

// Key is a 128-bit SipHash key derived once per header, expanded into the
// four SipHash-2-4 state words the way newsip did in the teacher's
// cuckoo.go.
type Key struct {
	k0, k1 uint64
	v      [4]uint64
}

// NewKey builds a SipHash key from two 64-bit little-endian words, mirroring
// cuckoo.newsip.
func NewKey(k0, k1 uint64) Key {
	k := Key{k0: k0, k1: k1}
	k.v[0] = k0 ^ 0x736f6d6570736575
	k.v[1] = k1 ^ 0x646f72616e646f6d
	k.v[2] = k0 ^ 0x6c7967656e657261
	k.v[3] = k1 ^ 0x7465646279746573
	return k
}

func rotl(x uint64, b uint) uint64 {
	return (x << b) | (x >> (64 - b))
}

func sipround(v *[4]uint64) {
	v[0] += v[1]
	v[2] += v[3]
	v[1] = rotl(v[1], 13)
	v[3] = rotl(v[3], 16)
	v[1] ^= v[0]
	v[3] ^= v[2]
	v[0] = rotl(v[0], 32)
	v[2] += v[1]
	v[0] += v[3]
	v[1] = rotl(v[1], 17)
	v[3] = rotl(v[3], 21)
	v[1] ^= v[2]
	v[3] ^= v[0]
	v[2] = rotl(v[2], 32)
}

// siphashPRF is the keyed mixing function (C1's concrete algorithm):
// SipHash-2-4 over a single 64-bit nonce word, following dipnode's
// SIPROUND schedule in kernel/cuckarookernel_new.go.
func siphashPRF(key Key, nonce uint64) uint64 {
	v := key.v
	v[3] ^= nonce
	sipround(&v)
	sipround(&v)
	v[0] ^= nonce
	v[2] ^= 0xff
	sipround(&v)
	sipround(&v)
	sipround(&v)
	sipround(&v)
	return (v[0] ^ v[1]) ^ (v[2] ^ v[3])
}

// Side identifies which bipartite half an endpoint function targets.
type Side uint8

const (
	SideU Side = 0
	SideV Side = 1
)

// Node computes node(key, nonce, side) -> node id, the keyed pseudorandom
// permutation described in spec.md §4.1. The raw SipHash output is masked
// to nodeMask; side selects between the "2*nonce" and "2*nonce+1" inputs,
// matching dipnode's (blockNonce<<1) / (blockNonce<<1|1) construction.
func Node(key Key, nonce uint64, side Side, p Params) uint64 {
	input := (nonce << 1) | uint64(side)
	return siphashPRF(key, input) & p.NodeMask()
}
