package core

import (
	"math/big"

	"golang.org/x/crypto/sha3"
)

// H combines two field elements into one via Keccak256: reduce(keccak256(BE32(a) ||
// BE32(b))) mod p. H is deterministic and order-sensitive: H(a,b) != H(b,a) in general.
//
// This replaces the Poseidon-family hashes present as historical duplicates elsewhere in
// the corpus; the on-chain contract this module targets uses Keccak.
func H(a, b FieldElement) FieldElement {
	ab := a.Bytes()
	bb := b.Bytes()

	buf := make([]byte, 0, 64)
	buf = append(buf, ab[:]...)
	buf = append(buf, bb[:]...)

	digest := keccak256(buf)
	return NewFromBigIntBytes(digest)
}

// HashOne is H(a, 0), for hashing a single value.
func HashOne(a FieldElement) FieldElement {
	return H(a, Zero)
}

// keccak256 computes the raw Ethereum-style Keccak256 digest (NewLegacyKeccak256, not
// the SHA3-256 variant, which differs in padding).
func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// NewFromBigIntBytes reduces an arbitrary 32-byte big-endian integer mod p. Unlike
// FromBytes, it does not require the input to already be canonical, since hash digests
// are uniformly distributed over the full 256-bit range.
func NewFromBigIntBytes(b []byte) FieldElement {
	return NewFromBigInt(new(big.Int).SetBytes(b))
}
