package protocols

import (
	"math/big"
	"testing"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
)

func smallProverOptions() ProverOptions {
	return ProverOptions{NumQueries: 4}
}

func TestProveVerifyScenario15Trades(t *testing.T) {
	returns := []int64{100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300}
	proof, err := Prove(returns, core.Zero, smallProverOptions())
	if err != nil {
		t.Fatalf("unexpected prove error: %v", err)
	}
	if proof.PublicInputs[0].Big().Cmp(big.NewInt(15)) != 0 {
		t.Errorf("expected trade_count=15, got %s", proof.PublicInputs[0].Big())
	}
	if proof.PublicInputs[1].Big().Cmp(big.NewInt(3000)) != 0 {
		t.Errorf("expected total_return=3000, got %s", proof.PublicInputs[1].Big())
	}
	if proof.PublicInputs[2].Big().Cmp(big.NewInt(60000)) != 0 {
		t.Errorf("expected claimed_sharpe_sq_scaled=60000, got %s", proof.PublicInputs[2].Big())
	}

	ok, err := Verify(proof, nil)
	if !ok || err != nil {
		t.Fatalf("expected verify to accept, got ok=%v err=%v", ok, err)
	}
}

func TestProveVerifyScenario23Trades(t *testing.T) {
	returns := make([]int64, 0, 23)
	for i := 0; i < 15; i++ {
		returns = append(returns, 200)
	}
	for i := 0; i < 8; i++ {
		returns = append(returns, 0)
	}
	proof, err := Prove(returns, core.Zero, smallProverOptions())
	if err != nil {
		t.Fatalf("unexpected prove error: %v", err)
	}
	if proof.PublicInputs[0].Big().Cmp(big.NewInt(23)) != 0 {
		t.Errorf("expected trade_count=23, got %s", proof.PublicInputs[0].Big())
	}
	if proof.PublicInputs[2].Big().Cmp(big.NewInt(18750)) != 0 {
		t.Errorf("expected claimed_sharpe_sq_scaled=18750, got %s", proof.PublicInputs[2].Big())
	}

	ok, err := Verify(proof, nil)
	if !ok || err != nil {
		t.Fatalf("expected verify to accept, got ok=%v err=%v", ok, err)
	}
}

func TestProveRejectsDegenerateMinimumTradesZeroVariance(t *testing.T) {
	if _, err := Prove([]int64{50, 50}, core.Zero, smallProverOptions()); err == nil {
		t.Error("expected prover to refuse a zero-variance two-trade sequence")
	}
}

func TestProveRejectsTraceLenBeyondMaxLogTraceLen(t *testing.T) {
	returns := []int64{100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300}
	opts := ProverOptions{NumQueries: 4, MaxLogTraceLen: 1}
	if _, err := Prove(returns, core.Zero, opts); err == nil {
		t.Error("expected prover to refuse a trace padded beyond the configured MaxLogTraceLen")
	}
}

func TestVerifyRejectsTamperedPublicInput(t *testing.T) {
	returns := []int64{100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300}
	proof, err := Prove(returns, core.Zero, smallProverOptions())
	if err != nil {
		t.Fatalf("unexpected prove error: %v", err)
	}
	proof.PublicInputs[2] = proof.PublicInputs[2].Add(core.One)

	ok, err := Verify(proof, nil)
	if ok || err == nil {
		t.Fatal("expected verify to reject a tampered claimed-Sharpe public input")
	}
}

func TestVerifyRejectsTamperedQueryPathWord(t *testing.T) {
	returns := []int64{100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300}
	proof, err := Prove(returns, core.Zero, smallProverOptions())
	if err != nil {
		t.Fatalf("unexpected prove error: %v", err)
	}
	if len(proof.QueryPaths) == 0 {
		t.Fatal("expected a non-empty query_paths array")
	}
	proof.QueryPaths[0] = proof.QueryPaths[0].Add(core.One)

	ok, err := Verify(proof, nil)
	if ok || err == nil {
		t.Fatal("expected verify to reject a tampered query_paths word")
	}
}

func TestVerifyCommitBoundAcceptsMatchingReceipts(t *testing.T) {
	receiptHashes := []core.FieldElement{
		core.NewFromUint64(111), core.NewFromUint64(222), core.NewFromUint64(333),
	}
	commitment := foldForTest(receiptHashes)

	returns := []int64{100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300}
	proof, err := Prove(returns, commitment, smallProverOptions())
	if err != nil {
		t.Fatalf("unexpected prove error: %v", err)
	}

	ok, err := VerifyCommitBound(proof, receiptHashes, nil)
	if !ok || err != nil {
		t.Fatalf("expected commit-bound verify to accept, got ok=%v err=%v", ok, err)
	}
}

func TestVerifyCommitBoundRejectsMismatchedReceipts(t *testing.T) {
	receiptHashes := []core.FieldElement{
		core.NewFromUint64(111), core.NewFromUint64(222), core.NewFromUint64(333),
	}
	commitment := foldForTest(receiptHashes)

	returns := []int64{100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300, 100, 200, 300}
	proof, err := Prove(returns, commitment, smallProverOptions())
	if err != nil {
		t.Fatalf("unexpected prove error: %v", err)
	}

	wrongHashes := []core.FieldElement{
		core.NewFromUint64(111), core.NewFromUint64(222), core.NewFromUint64(999),
	}
	ok, err := VerifyCommitBound(proof, wrongHashes, nil)
	if ok || err == nil {
		t.Fatal("expected commit-bound verify to reject mismatched receipt hashes")
	}
}

// foldForTest mirrors utils.Fold's left-fold-via-H convention without importing utils,
// to keep this package's test free of an import cycle concern and pin the expectation
// independently of that package's implementation.
func foldForTest(hashes []core.FieldElement) core.FieldElement {
	acc := core.Zero
	for _, h := range hashes {
		acc = core.H(acc, h)
	}
	return acc
}
