package core

import "fmt"

// Domain is a multiplicative coset {offset * generator^i : i = 0..length-1} of a
// power-of-two size, generated from the field's fixed 2^28-th root of unity.
type Domain struct {
	Offset    FieldElement
	Generator FieldElement
	LogSize   int
}

// GeneratorForLogSize returns g^(2^(28-logSize)), a primitive 2^logSize-th root of unity.
func GeneratorForLogSize(logSize int) (FieldElement, error) {
	if logSize < 0 || logSize > TwoAdicity {
		return Zero, fmt.Errorf("core: log_size %d exceeds two-adicity %d", logSize, TwoAdicity)
	}
	exp := uint64(1) << uint(TwoAdicity-logSize)
	return Generator228().Pow(exp), nil
}

// NewDomain builds the trace/LDE domain of size 2^logSize with no offset.
func NewDomain(logSize int) (*Domain, error) {
	gen, err := GeneratorForLogSize(logSize)
	if err != nil {
		return nil, err
	}
	return &Domain{Offset: One, Generator: gen, LogSize: logSize}, nil
}

// Coset returns the same-size domain shifted by offset.
func (d *Domain) Coset(offset FieldElement) *Domain {
	return &Domain{Offset: offset, Generator: d.Generator, LogSize: d.LogSize}
}

// Size returns 2^LogSize.
func (d *Domain) Size() int { return 1 << uint(d.LogSize) }

// Evaluate returns generator^index (the i-th power), ignoring offset. Use All() for
// the full coset including offset.
func Evaluate(gen FieldElement, index int) FieldElement {
	return gen.Pow(uint64(index))
}

// All enumerates every element of the domain: offset * generator^i for i in [0,size).
func (d *Domain) All() []FieldElement {
	n := d.Size()
	out := make([]FieldElement, n)
	cur := d.Offset
	for i := 0; i < n; i++ {
		out[i] = cur
		cur = cur.Mul(d.Generator)
	}
	return out
}

// bitReverse returns the log-bit-length reversal of x.
func bitReverse(x, logN int) int {
	var r int
	for i := 0; i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// FFT evaluates the polynomial given by coefficient slice `coeffs` (length a power of
// two, padded with zeros as needed) at every point of the subgroup generated by gen,
// in place, using an in-place radix-2 Cooley-Tukey butterfly network with a
// bit-reversal-permutation input convention.
//
// len(coeffs) must be a power of two with log2(len) <= 28.
func FFT(coeffs []FieldElement, gen FieldElement) error {
	n := len(coeffs)
	logN := log2Exact(n)
	if logN < 0 {
		return fmt.Errorf("core: FFT input length %d is not a power of two", n)
	}
	if logN > TwoAdicity {
		return fmt.Errorf("core: FFT size 2^%d exceeds two-adicity %d", logN, TwoAdicity)
	}

	for i := 0; i < n; i++ {
		j := bitReverse(i, logN)
		if i < j {
			coeffs[i], coeffs[j] = coeffs[j], coeffs[i]
		}
	}

	// precompute twiddle powers of gen for each stage
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		stageGen := gen.Pow(uint64(n / size))
		for start := 0; start < n; start += size {
			w := One
			for k := 0; k < half; k++ {
				u := coeffs[start+k]
				v := coeffs[start+k+half].Mul(w)
				coeffs[start+k] = u.Add(v)
				coeffs[start+k+half] = u.Sub(v)
				w = w.Mul(stageGen)
			}
		}
	}
	return nil
}

// IFFT is the inverse of FFT: it recovers coefficients from evaluations, using the
// inverse generator and scaling the result by n^-1.
func IFFT(values []FieldElement, gen FieldElement) error {
	n := len(values)
	if err := FFT(values, gen.Inv()); err != nil {
		return err
	}
	nInv := NewFromUint64(uint64(n)).Inv()
	for i := range values {
		values[i] = values[i].Mul(nInv)
	}
	return nil
}

// FFTCoset evaluates coeffs over the coset {offset * gen^i}, by pre-scaling
// coefficient i by offset^i and delegating to the plain-domain FFT.
func FFTCoset(coeffs []FieldElement, gen, offset FieldElement) error {
	cur := One
	for i := range coeffs {
		coeffs[i] = coeffs[i].Mul(cur)
		cur = cur.Mul(offset)
	}
	return FFT(coeffs, gen)
}

// IFFTCoset is the inverse of FFTCoset.
func IFFTCoset(values []FieldElement, gen, offset FieldElement) error {
	if err := IFFT(values, gen); err != nil {
		return err
	}
	offsetInv := offset.Inv()
	cur := One
	for i := range values {
		values[i] = values[i].Mul(cur)
		cur = cur.Mul(offsetInv)
	}
	return nil
}

func log2Exact(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		return -1
	}
	r := 0
	for n > 1 {
		n >>= 1
		r++
	}
	return r
}

// IsPowerOfTwo reports whether n is a power of two.
func IsPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}

// Log2 returns log2(n) for a power-of-two n, or -1 otherwise.
func Log2(n int) int { return log2Exact(n) }
