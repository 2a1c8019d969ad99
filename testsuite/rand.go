// rand.go - seeded deterministic bytes and names

package main

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	mrand "math/rand/v2"
)

// seededBytes returns 'n' deterministic pseudo-random bytes for
// the given seed; the same seed always yields the same bytes.
func seededBytes(n int64, seed uint64) []byte {
	var sd [32]byte
	binary.LittleEndian.PutUint64(sd[:8], seed)

	rng := mrand.NewChaCha8(sd)
	b := make([]byte, n)

	var w [8]byte
	for i := int64(0); i < n; i += 8 {
		binary.LittleEndian.PutUint64(w[:], rng.Uint64())
		copy(b[i:], w[:])
	}
	return b
}

// randName returns 'n' random bytes as a hex string
func randName(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("rand: can't read %d bytes: %s", n, err))
	}
	return hex.EncodeToString(b)
}
