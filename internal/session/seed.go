package session

import (
	"encoding/binary"
	"math/rand/v2"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// SeedFromPhrase derives a game seed from a shared phrase so players on
// different machines get the same question order. Case and surrounding
// whitespace are ignored.
func SeedFromPhrase(phrase string) uint64 {
	sum := blake2b.Sum256([]byte(strings.ToLower(strings.TrimSpace(phrase))))
	return binary.LittleEndian.Uint64(sum[:8])
}

func RandomSeed() uint64 {
	return rand.Uint64()
}
