package protocols

import (
	"testing"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
)

func TestProofEncodeDecodeWordsRoundTrip(t *testing.T) {
	returns := []int64{100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300}
	proof, err := Prove(returns, core.Zero, smallProverOptions())
	if err != nil {
		t.Fatalf("unexpected prove error: %v", err)
	}

	words := proof.EncodeWords()
	decoded, err := DecodeWords(words, proof.QueryMetadata)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if decoded.PublicInputs != proof.PublicInputs {
		t.Error("public inputs did not round-trip")
	}
	if len(decoded.Commitments) != len(proof.Commitments) {
		t.Fatalf("commitments length mismatch: got %d want %d", len(decoded.Commitments), len(proof.Commitments))
	}
	for i := range proof.Commitments {
		if !decoded.Commitments[i].Equal(proof.Commitments[i]) {
			t.Errorf("commitment %d did not round-trip", i)
		}
	}
	if decoded.OODValues != proof.OODValues {
		t.Error("ood_values did not round-trip")
	}
	if len(decoded.FRIFinalPoly) != len(proof.FRIFinalPoly) {
		t.Fatalf("fri_final_poly length mismatch: got %d want %d", len(decoded.FRIFinalPoly), len(proof.FRIFinalPoly))
	}

	ok, err := Verify(decoded, nil)
	if !ok || err != nil {
		t.Fatalf("expected the round-tripped proof to still verify, got ok=%v err=%v", ok, err)
	}
}

func TestProofValidateRejectsShortMetadata(t *testing.T) {
	p := &Proof{QueryMetadata: []int{1, 1}}
	if err := p.Validate(nil); err == nil {
		t.Error("expected validation to reject too-short query_metadata")
	}
}

func TestProofValidateRejectsOutOfBoundLogTraceLen(t *testing.T) {
	p := &Proof{QueryMetadata: []int{1, 1, 27, 0}}
	if err := p.Validate(nil); err == nil {
		t.Error("expected validation to reject log_trace_len > 26")
	}
}
