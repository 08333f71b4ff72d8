// Package core implements the Montgomery-form BN254 scalar field, the Keccak-based
// field hash, multiplicative coset domains, and Merkle trees used by the Sharpe STARK.
package core

import (
	"fmt"
	"math/big"
	"math/bits"
)

// FieldElement is a residue class mod p, p the BN254 scalar prime, stored internally in
// Montgomery form (value*R mod p, R = 2^256). Representatives are always fully reduced.
type FieldElement struct {
	limbs [4]uint64 // little-endian 64-bit limbs, Montgomery form
}

// modulus: p = 21888242871839275222246405745257275088548364400416034343698204186575808495617
var modulus = [4]uint64{
	0x43e1f593f0000001,
	0x2833e84879b97091,
	0xb85045b68181585d,
	0x30644e72e131a029,
}

// invMont = -p^-1 mod 2^64, used by Montgomery reduction.
const invMont uint64 = 0xc2e1f593efffffff

// r2 = R^2 mod p, used to lift a raw integer into Montgomery form.
var r2 = [4]uint64{
	0x1bb8e645ae216da7,
	0x53fe3ab1e35c59e3,
	0x8c49833d53bb8085,
	0x0216d0b17f4e44a5,
}

// oneMont is ONE in Montgomery form (R mod p).
var oneMont = [4]uint64{
	0xac96341c4ffffffb,
	0x36fc76959f60cd29,
	0x666ea36f7879462e,
	0x0e0a77c19a07df2f,
}

// Zero is the additive identity.
var Zero = FieldElement{}

// One is the multiplicative identity.
var One = FieldElement{limbs: oneMont}

// generator228Mont is the fixed primitive 2^28-th root of unity, in Montgomery form.
// Raw limbs taken from the reference implementation's domain constant.
var generator228Mont = fromRawLimbs([4]uint64{
	0x9bd61b6e725b19f0,
	0x402d111e41112ed4,
	0x00e0a7eb8ef62abc,
	0x2a3c09f0a58a7e85,
})

// Generator228 returns the fixed primitive 2^28-th root of unity in the BN254 scalar
// field. Two-adicity of this field is 28.
func Generator228() FieldElement { return generator228Mont }

// TwoAdicity is the largest k such that the field has a primitive 2^k-th root of unity.
const TwoAdicity = 28

// fromRawLimbs interprets limbs as a canonical (non-Montgomery) little-endian integer
// already reduced mod p, and lifts it into Montgomery form.
func fromRawLimbs(limbs [4]uint64) FieldElement {
	return FieldElement{limbs: montMul(limbs, r2)}
}

// NewFromUint64 creates a field element from a small non-negative integer.
func NewFromUint64(v uint64) FieldElement {
	return fromRawLimbs([4]uint64{v, 0, 0, 0})
}

// NewFromBigInt creates a field element from an arbitrary big.Int, reducing mod p first.
func NewFromBigInt(v *big.Int) FieldElement {
	var reduced big.Int
	modBig := modulusBigInt()
	reduced.Mod(v, modBig)
	var limbs [4]uint64
	words := reduced.Bits()
	for i := 0; i < len(words) && i < 4; i++ {
		limbs[i] = uint64(words[i])
	}
	return fromRawLimbs(limbs)
}

var modulusCache *big.Int

func modulusBigInt() *big.Int {
	if modulusCache == nil {
		m := new(big.Int)
		for i := 3; i >= 0; i-- {
			m.Lsh(m, 64)
			m.Or(m, new(big.Int).SetUint64(modulus[i]))
		}
		modulusCache = m
	}
	return modulusCache
}

// FromBytes decodes a canonical 32-byte big-endian representative into a field element.
// Returns an error if the value is not strictly less than p (non-canonical encoding).
func FromBytes(b [32]byte) (FieldElement, error) {
	var limbs [4]uint64
	for i := 0; i < 4; i++ {
		// limb i covers bytes [32-8*(i+1), 32-8*i)
		start := 32 - 8*(i+1)
		var v uint64
		for j := 0; j < 8; j++ {
			v = v<<8 | uint64(b[start+j])
		}
		limbs[i] = v
	}
	if !limbsLess(limbs, modulus) {
		return FieldElement{}, fmt.Errorf("core: encoded value is not canonical (>= field modulus)")
	}
	return fromRawLimbs(limbs), nil
}

// Bytes encodes the field element as its canonical 32-byte big-endian representative.
func (a FieldElement) Bytes() [32]byte {
	raw := montMul(a.limbs, [4]uint64{1, 0, 0, 0})
	var out [32]byte
	for i := 0; i < 4; i++ {
		v := raw[i]
		start := 32 - 8*(i+1)
		for j := 7; j >= 0; j-- {
			out[start+j] = byte(v)
			v >>= 8
		}
	}
	return out
}

// Big returns the canonical non-Montgomery representative as a big.Int.
func (a FieldElement) Big() *big.Int {
	b := a.Bytes()
	return new(big.Int).SetBytes(b[:])
}

// IsZero reports whether a is the additive identity.
func (a FieldElement) IsZero() bool {
	return a.limbs == [4]uint64{}
}

// Equal reports whether a and b represent the same residue.
func (a FieldElement) Equal(b FieldElement) bool {
	return a.limbs == b.limbs
}

// Add returns a + b mod p.
func (a FieldElement) Add(b FieldElement) FieldElement {
	sum, carry := addLimbs(a.limbs, b.limbs)
	if carry != 0 || !limbsLess(sum, modulus) {
		sum, _ = subLimbs(sum, modulus)
	}
	return FieldElement{limbs: sum}
}

// Sub returns a - b mod p.
func (a FieldElement) Sub(b FieldElement) FieldElement {
	diff, borrow := subLimbs(a.limbs, b.limbs)
	if borrow != 0 {
		diff, _ = addLimbs(diff, modulus)
	}
	return FieldElement{limbs: diff}
}

// Neg returns -a mod p.
func (a FieldElement) Neg() FieldElement {
	return Zero.Sub(a)
}

// Mul returns a * b mod p via Montgomery multiplication (Separated Operand Scanning).
func (a FieldElement) Mul(b FieldElement) FieldElement {
	return FieldElement{limbs: montMul(a.limbs, b.limbs)}
}

// Square returns a * a mod p.
func (a FieldElement) Square() FieldElement {
	return a.Mul(a)
}

// Pow returns a^exp mod p using right-to-left square-and-multiply.
func (a FieldElement) Pow(exp uint64) FieldElement {
	result := One
	base := a
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

// PowBigInt returns a^exp mod p for an arbitrary non-negative exponent.
func (a FieldElement) PowBigInt(exp *big.Int) FieldElement {
	result := One
	base := a
	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result
}

// pMinus2 is p-2, the Fermat exponent used for field inversion.
var pMinus2 = new(big.Int).Sub(modulusBigInt(), big.NewInt(2))

// Inv returns a^-1 mod p via Fermat's little theorem (a^(p-2)).
//
// By convention Inv(0) returns 0. This is non-mathematical and must never be relied on
// for soundness by new callers; it exists only so stray zero operands do not panic.
func (a FieldElement) Inv() FieldElement {
	if a.IsZero() {
		return Zero
	}
	return a.PowBigInt(pMinus2)
}

// Div returns a / b mod p. Division by zero returns 0 (see Inv).
func (a FieldElement) Div(b FieldElement) FieldElement {
	return a.Mul(b.Inv())
}

// BatchInvert returns the inverses of every element of vs in a new slice (vs is left
// unchanged) using Montgomery's trick: one inversion plus 3*len(vs) multiplications,
// instead of len(vs) inversions.
func BatchInvert(vs []FieldElement) []FieldElement {
	n := len(vs)
	if n == 0 {
		return vs
	}
	prefix := make([]FieldElement, n)
	acc := One
	for i, v := range vs {
		prefix[i] = acc
		acc = acc.Mul(v)
	}
	accInv := acc.Inv()
	out := make([]FieldElement, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = accInv.Mul(prefix[i])
		accInv = accInv.Mul(vs[i])
	}
	return out
}

func (a FieldElement) String() string {
	return a.Big().String()
}

// --- limb arithmetic helpers ---

func limbsLess(a, b [4]uint64) bool {
	for i := 3; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func addLimbs(a, b [4]uint64) ([4]uint64, uint64) {
	var out [4]uint64
	var carry uint64
	for i := 0; i < 4; i++ {
		s, c := bits.Add64(a[i], b[i], carry)
		out[i] = s
		carry = c
	}
	return out, carry
}

func subLimbs(a, b [4]uint64) ([4]uint64, uint64) {
	var out [4]uint64
	var borrow uint64
	for i := 0; i < 4; i++ {
		d, bw := bits.Sub64(a[i], b[i], borrow)
		out[i] = d
		borrow = bw
	}
	return out, borrow
}

// montMul computes (a*b*R^-1) mod p using Separated Operand Scanning: a full 512-bit
// schoolbook product followed by four reduction rounds, one per limb of the modulus.
func montMul(a, b [4]uint64) [4]uint64 {
	var t [9]uint64

	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			var c1, c2 uint64
			lo, c1 = bits.Add64(lo, t[i+j], 0)
			lo, c2 = bits.Add64(lo, carry, 0)
			hi += c1 + c2
			t[i+j] = lo
			carry = hi
		}
		propagateCarry(&t, i+4, carry)
	}

	for i := 0; i < 4; i++ {
		m := t[i] * invMont
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(m, modulus[j])
			var c1, c2 uint64
			lo, c1 = bits.Add64(lo, t[i+j], 0)
			lo, c2 = bits.Add64(lo, carry, 0)
			hi += c1 + c2
			t[i+j] = lo
			carry = hi
		}
		propagateCarry(&t, i+4, carry)
	}

	var result [4]uint64
	copy(result[:], t[4:8])
	if t[8] != 0 || !limbsLess(result, modulus) {
		result, _ = subLimbs(result, modulus)
	}
	return result
}

func propagateCarry(t *[9]uint64, k int, carry uint64) {
	for carry != 0 && k < len(t) {
		s, c := bits.Add64(t[k], carry, 0)
		t[k] = s
		carry = c
		k++
	}
}
