package protocols

import (
	"fmt"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/utils"
)

// Verify replays the transcript and checks commitments, the AIR at the out-of-domain
// point, and the FRI low-degree test. It returns (true, nil) on acceptance; any
// rejection reason is returned as a non-nil error alongside a false result, but
// callers must treat every non-nil error as a plain reject -- the boolean is the only
// externally observable outcome (spec.md's propagation policy). A nil cfg uses
// utils.DefaultVerifierConfig().
func Verify(proof *Proof, cfg *utils.VerifierConfig) (bool, error) {
	if err := proof.Validate(cfg); err != nil {
		return false, fmt.Errorf("protocols: %w", err)
	}

	logN := proof.LogTraceLen()
	n := 1 << uint(logN)
	traceGen, err := core.GeneratorForLogSize(logN)
	if err != nil {
		return false, fmt.Errorf("protocols: malformed proof: %w", err)
	}
	omegaLast := traceGen.Pow(uint64(n - 1))

	transcript := NewTranscriptFromPublicInputs(proof.PublicInputs[:])
	transcript.Commit(proof.TraceRoot())
	z := transcript.DrawFelt()

	var oodCur, oodNext Row
	for c := 0; c < NumColumns; c++ {
		oodCur[c] = proof.OODValues[c]
		oodNext[c] = proof.OODValues[NumColumns+c]
	}
	compDeclared := proof.OODValues[2*NumColumns]

	var alphas [NumChallenges]core.FieldElement
	for i := range alphas {
		alphas[i] = transcript.DrawFelt()
	}

	totalReturn := proof.PublicInputs[1]
	claimed := proof.PublicInputs[2]
	transition, boundary := EvaluateQuotients(oodCur, oodNext, z, n, omegaLast, totalReturn, claimed)
	recomposed := CombineQuotients(transition, boundary, alphas)

	if !recomposed.Equal(compDeclared) {
		return false, fmt.Errorf("protocols: AIR failure: recomposed composition value at z does not match the declared out-of-domain value")
	}

	transcript.Commit(proof.CompositionRoot())
	layerRoots := proof.FRILayerRoots()
	if len(layerRoots) == 0 || !proof.CompositionRoot().Equal(layerRoots[0]) {
		return false, fmt.Errorf("protocols: transcript mismatch: composition root does not equal FRI layer-0 root")
	}

	logLDE := logN + 2
	ldeGen, err := core.GeneratorForLogSize(logLDE)
	if err != nil {
		return false, fmt.Errorf("protocols: malformed proof: %w", err)
	}
	ldeOffset := core.Generator228()

	friParams := FRIParams{
		LogDomainSize: logLDE,
		NumLayers:     proof.NumFRILayers(),
		NumQueries:    proof.NumQueries(),
		Blowup:        4,
	}

	queryProofs := proof.UnflattenQueries()
	if err := FRIVerify(layerRoots, proof.FRIFinalPoly, proof.QueryIndices(), queryProofs, ldeGen, ldeOffset, friParams, transcript); err != nil {
		return false, fmt.Errorf("protocols: %w", err)
	}

	return true, nil
}

// VerifyCommitBound is the optional commitment-bound verify wrapper V': in addition to
// the standard check, it folds the given receipt hashes into a data commitment and
// asserts the trace's commitment column witnessed exactly that value. A nil cfg uses
// utils.DefaultVerifierConfig().
func VerifyCommitBound(proof *Proof, receiptHashes []core.FieldElement, cfg *utils.VerifierConfig) (bool, error) {
	ok, err := Verify(proof, cfg)
	if !ok {
		return false, err
	}

	folded := utils.Fold(receiptHashes)
	logN := proof.LogTraceLen()
	predictedRoot := core.ConstantColumnRoot(folded, logN)

	if !predictedRoot.Equal(proof.PublicInputs[3]) {
		return false, fmt.Errorf("protocols: commitment mismatch: predicted constant-column root does not equal public_inputs[3]")
	}
	return true, nil
}
