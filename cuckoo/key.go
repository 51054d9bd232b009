package cuckoo

import (
	"crypto/sha256"
	"encoding/binary"
)

// SetHeader derives the SipHash key from an arbitrary header, the external
// collaborator contract described in spec.md §6: SHA-256 of the header,
// first 16 bytes read as two little-endian uint64 words, matching
// newsip's binary.LittleEndian.Uint64 reads in cuckoo.go.
func SetHeader(header []byte) Key {
	h := sha256.Sum256(header)
	k0 := binary.LittleEndian.Uint64(h[0:8])
	k1 := binary.LittleEndian.Uint64(h[8:16])
	return NewKey(k0, k1)
}
