package protocols

import (
	"testing"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
)

func buildLowDegreeLDE(t *testing.T, logDomainSize int) (evals []core.FieldElement, gen, offset core.FieldElement) {
	t.Helper()
	gen, err := core.GeneratorForLogSize(logDomainSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	offset = core.Generator228()

	size := 1 << uint(logDomainSize)
	coeffs := make([]core.FieldElement, size)
	coeffs[0] = core.NewFromUint64(5)
	coeffs[1] = core.NewFromUint64(11)
	coeffs[2] = core.NewFromUint64(3)
	coeffs[3] = core.NewFromUint64(19)
	for i := 4; i < size; i++ {
		coeffs[i] = core.Zero
	}

	evals = append([]core.FieldElement(nil), coeffs...)
	if err := core.FFTCoset(evals, gen, offset); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return evals, gen, offset
}

func TestFRICommitQueryVerifyRoundTrip(t *testing.T) {
	logDomainSize := 5
	evals, gen, offset := buildLowDegreeLDE(t, logDomainSize)

	params := FRIParams{LogDomainSize: logDomainSize, NumLayers: 3, NumQueries: 6, Blowup: 4}

	commitTranscript := NewTranscript(core.NewFromUint64(999))
	layers, finalCoeffs, err := FRICommitPhase(evals, gen, offset, params, commitTranscript)
	if err != nil {
		t.Fatalf("unexpected commit-phase error: %v", err)
	}
	indices, proofs, err := FRIQueryPhase(layers, params, commitTranscript)
	if err != nil {
		t.Fatalf("unexpected query-phase error: %v", err)
	}

	layerRoots := make([]core.FieldElement, params.NumLayers)
	for i := 0; i < params.NumLayers; i++ {
		layerRoots[i] = layers[i].tree.Root()
	}

	verifyTranscript := NewTranscript(core.NewFromUint64(999))
	if err := FRIVerify(layerRoots, finalCoeffs, indices, proofs, gen, offset, params, verifyTranscript); err != nil {
		t.Fatalf("expected FRI verify to accept a consistent proof, got: %v", err)
	}
}

func TestFRIVerifyRejectsTamperedQueryValue(t *testing.T) {
	logDomainSize := 5
	evals, gen, offset := buildLowDegreeLDE(t, logDomainSize)
	params := FRIParams{LogDomainSize: logDomainSize, NumLayers: 3, NumQueries: 6, Blowup: 4}

	commitTranscript := NewTranscript(core.NewFromUint64(1234))
	layers, finalCoeffs, err := FRICommitPhase(evals, gen, offset, params, commitTranscript)
	if err != nil {
		t.Fatalf("unexpected commit-phase error: %v", err)
	}
	indices, proofs, err := FRIQueryPhase(layers, params, commitTranscript)
	if err != nil {
		t.Fatalf("unexpected query-phase error: %v", err)
	}
	proofs[0].Values[0][0] = proofs[0].Values[0][0].Add(core.One)

	layerRoots := make([]core.FieldElement, params.NumLayers)
	for i := 0; i < params.NumLayers; i++ {
		layerRoots[i] = layers[i].tree.Root()
	}

	verifyTranscript := NewTranscript(core.NewFromUint64(1234))
	if err := FRIVerify(layerRoots, finalCoeffs, indices, proofs, gen, offset, params, verifyTranscript); err == nil {
		t.Error("expected FRI verify to reject a tampered query value")
	}
}

func TestFRIVerifyRejectsWrongFinalPoly(t *testing.T) {
	logDomainSize := 5
	evals, gen, offset := buildLowDegreeLDE(t, logDomainSize)
	params := FRIParams{LogDomainSize: logDomainSize, NumLayers: 3, NumQueries: 6, Blowup: 4}

	commitTranscript := NewTranscript(core.NewFromUint64(55))
	layers, finalCoeffs, err := FRICommitPhase(evals, gen, offset, params, commitTranscript)
	if err != nil {
		t.Fatalf("unexpected commit-phase error: %v", err)
	}
	indices, proofs, err := FRIQueryPhase(layers, params, commitTranscript)
	if err != nil {
		t.Fatalf("unexpected query-phase error: %v", err)
	}

	layerRoots := make([]core.FieldElement, params.NumLayers)
	for i := 0; i < params.NumLayers; i++ {
		layerRoots[i] = layers[i].tree.Root()
	}

	tamperedFinal := append([]core.FieldElement(nil), finalCoeffs...)
	tamperedFinal[0] = tamperedFinal[0].Add(core.One)

	// Verify with a transcript seeded identically: the final-poly commit step differs
	// from the prover's, so the transcript itself diverges and the re-derived query
	// indices will not match what was recorded -- this must be rejected regardless of
	// whether it surfaces as a transcript mismatch or a fold mismatch.
	verifyTranscript := NewTranscript(core.NewFromUint64(55))
	if err := FRIVerify(layerRoots, tamperedFinal, indices, proofs, gen, offset, params, verifyTranscript); err == nil {
		t.Error("expected FRI verify to reject a tampered final polynomial")
	}
}

func TestBitsFromIndexMatchesMerkleConvention(t *testing.T) {
	leaves := make([]core.FieldElement, 8)
	for i := range leaves {
		leaves[i] = core.NewFromUint64(uint64(i))
	}
	tree, err := core.BuildMerkleTree(leaves)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range leaves {
		siblings, bits, err := tree.AuthPath(i)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		derived := bitsFromIndex(i, len(siblings))
		for d := range bits {
			if bits[d] != derived[d] {
				t.Errorf("index %d: bit %d mismatch: tree=%v derived=%v", i, d, bits[d], derived[d])
			}
		}
	}
}
