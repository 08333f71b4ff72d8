package protocols

import (
	"fmt"

	"github.com/2026Arbitriumhackthon/starkverifier/internal/starkverifier/core"
)

// ProverOptions configures the prover pipeline's security/performance knobs.
type ProverOptions struct {
	NumQueries int // FRI query count; security scales roughly as 4*NumQueries bits

	// MaxLogTraceLen bounds the padded trace length this call will accept, mirroring
	// utils.ProverConfig.MaxLogTraceLen. Zero means unbounded (used by callers, mainly
	// tests, that construct ProverOptions directly rather than via a ProverConfig).
	MaxLogTraceLen int
}

// DefaultProverOptions returns a reasonable default query count.
func DefaultProverOptions() ProverOptions {
	return ProverOptions{NumQueries: 24}
}

// Prove runs the full prover pipeline of spec.md §4.10 over a private returns sequence
// and an optional data commitment, producing the shared wire-format Proof.
func Prove(returns []int64, commitment core.FieldElement, opts ProverOptions) (*Proof, error) {
	trace, err := GenerateTrace(returns, commitment)
	if err != nil {
		return nil, fmt.Errorf("protocols: prove: %w", err)
	}

	claimedBig, err := trace.ComputeSharpeSqScaled()
	if err != nil {
		return nil, fmt.Errorf("protocols: prove: %w", err)
	}
	claimed := core.NewFromBigInt(claimedBig)

	publicInputs := trace.PublicInputs(claimed)

	logN := core.Log2(trace.Len)
	if opts.MaxLogTraceLen > 0 && logN > opts.MaxLogTraceLen {
		return nil, fmt.Errorf("protocols: prove: padded trace length 2^%d exceeds configured max_log_trace_len %d", logN, opts.MaxLogTraceLen)
	}
	traceGen, err := core.GeneratorForLogSize(logN)
	if err != nil {
		return nil, fmt.Errorf("protocols: prove: %w", err)
	}

	logBlowup := 2
	blowup := 1 << uint(logBlowup)
	ldeSize := trace.Len * blowup
	logLDE := logN + logBlowup
	ldeGen, err := core.GeneratorForLogSize(logLDE)
	if err != nil {
		return nil, fmt.Errorf("protocols: prove: %w", err)
	}
	ldeOffset := core.Generator228()

	// Step 3: IFFT each column to coefficients, zero-pad, FFT on the LDE coset.
	var traceCoeffs [NumColumns][]core.FieldElement
	var ldeColumns [NumColumns][]core.FieldElement
	for c := 0; c < NumColumns; c++ {
		coeffs := append([]core.FieldElement(nil), trace.Columns[c]...)
		if err := core.IFFT(coeffs, traceGen); err != nil {
			return nil, fmt.Errorf("protocols: prove: IFFT column %d: %w", c, err)
		}
		traceCoeffs[c] = coeffs

		padded := make([]core.FieldElement, ldeSize)
		copy(padded, coeffs)
		if err := core.FFTCoset(padded, ldeGen, ldeOffset); err != nil {
			return nil, fmt.Errorf("protocols: prove: FFT column %d: %w", c, err)
		}
		ldeColumns[c] = padded
	}

	// Step 4: commit trace (multi-column Merkle over the LDE).
	traceTree, err := core.BuildMerkleTreeMultiColumn(ldeColumns[:])
	if err != nil {
		return nil, fmt.Errorf("protocols: prove: trace merkle build: %w", err)
	}
	traceRoot := traceTree.Root()

	// Step 5: seed transcript with public inputs, commit trace root, draw z.
	transcript := NewTranscriptFromPublicInputs(publicInputs[:])
	transcript.Commit(traceRoot)
	z := transcript.DrawFelt()
	zOmega := z.Mul(traceGen)

	// Step 6: evaluate each trace polynomial at z and z*omega.
	var oodCur, oodNext Row
	for c := 0; c < NumColumns; c++ {
		oodCur[c] = evaluatePolyHorner(traceCoeffs[c], z)
		oodNext[c] = evaluatePolyHorner(traceCoeffs[c], zOmega)
	}
	var alphas [NumChallenges]core.FieldElement
	for i := range alphas {
		alphas[i] = transcript.DrawFelt()
	}

	// Step 7: composition value at z.
	omegaLast := traceGen.Pow(uint64(trace.Len - 1))
	totalReturn := publicInputs[1]
	compAtZ := EvaluateCompositionAtPoint(oodCur, oodNext, z, trace.Len, omegaLast, totalReturn, claimed, alphas)

	// Step 8: composition LDE, commit its root.
	compLDE, err := EvaluateCompositionLDE(ldeColumns, &core.Domain{Offset: ldeOffset, Generator: ldeGen, LogSize: logLDE}, traceGen, trace.Len, totalReturn, claimed, alphas)
	if err != nil {
		return nil, fmt.Errorf("protocols: prove: composition LDE: %w", err)
	}
	compTree, err := core.BuildMerkleTree(compLDE)
	if err != nil {
		return nil, fmt.Errorf("protocols: prove: composition merkle build: %w", err)
	}
	compRoot := compTree.Root()
	transcript.Commit(compRoot)

	// Step 9: FRI commit + query phase over the composition LDE.
	friParams := DefaultFRIParams(logN, opts.NumQueries)
	friParams.LogDomainSize = logLDE // recompute precisely from the actual LDE size
	friParams.NumLayers = logLDE - 2
	if friParams.NumLayers < 1 {
		friParams.NumLayers = 1
	}

	layers, finalCoeffs, err := FRICommitPhase(compLDE, ldeGen, ldeOffset, friParams, transcript)
	if err != nil {
		return nil, fmt.Errorf("protocols: prove: FRI commit phase: %w", err)
	}
	queryIndices, queryProofs, err := FRIQueryPhase(layers, friParams, transcript)
	if err != nil {
		return nil, fmt.Errorf("protocols: prove: FRI query phase: %w", err)
	}

	// Step 10: serialize.
	commitments := make([]core.FieldElement, 0, 2+friParams.NumLayers)
	commitments = append(commitments, traceRoot, compRoot)
	for i := 0; i < friParams.NumLayers; i++ {
		commitments = append(commitments, layers[i].tree.Root())
	}

	var ood [NumOODValues]core.FieldElement
	for c := 0; c < NumColumns; c++ {
		ood[c] = oodCur[c]
		ood[NumColumns+c] = oodNext[c]
	}
	ood[2*NumColumns] = compAtZ

	queryValues, queryPaths := FlattenQueries(queryProofs)

	metadata := make([]int, 0, 3+len(queryIndices))
	metadata = append(metadata, friParams.NumQueries, friParams.NumLayers, logN)
	metadata = append(metadata, queryIndices...)

	proof := &Proof{
		PublicInputs:  publicInputs,
		Commitments:   commitments,
		OODValues:     ood,
		FRIFinalPoly:  finalCoeffs,
		QueryValues:   queryValues,
		QueryPaths:    queryPaths,
		QueryMetadata: metadata,
	}
	return proof, nil
}
