package core

import "testing"

func TestGeneratorOrder(t *testing.T) {
	for _, logSize := range []int{1, 2, 4, 8} {
		gen, err := GeneratorForLogSize(logSize)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n := 1 << uint(logSize)
		if !gen.Pow(uint64(n)).Equal(One) {
			t.Errorf("generator for log_size %d: gen^n != 1", logSize)
		}
		if gen.Pow(uint64(n/2)).Equal(One) {
			t.Errorf("generator for log_size %d: gen^(n/2) == 1 (not primitive)", logSize)
		}
	}
}

func TestGeneratorForLogSizeOneIsMinusOne(t *testing.T) {
	gen, err := GeneratorForLogSize(1)
	if err != nil {
		t.Fatal(err)
	}
	if !gen.Equal(One.Neg()) {
		t.Error("domain_generator(1) should equal p-1")
	}
}

func TestGeneratorRejectsExcessiveLogSize(t *testing.T) {
	if _, err := GeneratorForLogSize(TwoAdicity + 1); err == nil {
		t.Error("expected error for log_size exceeding two-adicity")
	}
}

func TestFFTIFFTRoundTrip(t *testing.T) {
	for _, logN := range []int{1, 2, 3, 6} {
		n := 1 << uint(logN)
		gen, err := GeneratorForLogSize(logN)
		if err != nil {
			t.Fatal(err)
		}
		original := make([]FieldElement, n)
		for i := range original {
			original[i] = NewFromUint64(uint64(i*7 + 3))
		}
		values := append([]FieldElement(nil), original...)
		if err := FFT(values, gen); err != nil {
			t.Fatalf("FFT failed: %v", err)
		}
		if err := IFFT(values, gen); err != nil {
			t.Fatalf("IFFT failed: %v", err)
		}
		for i := range original {
			if !values[i].Equal(original[i]) {
				t.Fatalf("round trip mismatch at n=%d index %d", n, i)
			}
		}
	}
}

func TestFFTMatchesDirectEvaluation(t *testing.T) {
	logN := 3
	n := 1 << uint(logN)
	gen, err := GeneratorForLogSize(logN)
	if err != nil {
		t.Fatal(err)
	}
	coeffs := make([]FieldElement, n)
	for i := range coeffs {
		coeffs[i] = NewFromUint64(uint64(i + 1))
	}
	values := append([]FieldElement(nil), coeffs...)
	if err := FFT(values, gen); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < n; i++ {
		x := gen.Pow(uint64(i))
		want := evaluatePoly(coeffs, x)
		if !values[i].Equal(want) {
			t.Fatalf("FFT output at index %d does not match direct evaluation", i)
		}
	}
}

func evaluatePoly(coeffs []FieldElement, x FieldElement) FieldElement {
	acc := Zero
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(coeffs[i])
	}
	return acc
}

func TestFFTRejectsNonPowerOfTwo(t *testing.T) {
	vals := make([]FieldElement, 3)
	if err := FFT(vals, One); err == nil {
		t.Error("expected error for non-power-of-two length")
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 15: 16, 16: 16, 17: 32}
	for in, want := range cases {
		if got := NextPowerOfTwo(in); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
